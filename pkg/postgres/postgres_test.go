package postgres_test

import (
	"testing"

	"github.com/Astemirdum/bookreview-service/pkg/postgres"
	"github.com/stretchr/testify/require"
)

func TestDB_DSN(t *testing.T) {
	t.Parallel()
	cfg := postgres.DB{
		Host:     "db",
		Port:     5433,
		Username: "reader",
		Password: "secret",
		NameDB:   "books",
		SSLMode:  "disable",
	}
	require.Equal(t, "postgres://reader:secret@db:5433/books?sslmode=disable", cfg.DSN())
}

func TestParseDSN(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		dsn     string
		want    postgres.DB
		wantErr bool
	}{
		{
			name: "full",
			dsn:  "postgres://reader:secret@db:5433/books?sslmode=require",
			want: postgres.DB{Host: "db", Port: 5433, Username: "reader", Password: "secret", NameDB: "books", SSLMode: "require"},
		},
		{
			name: "defaults",
			dsn:  "postgresql://",
			want: postgres.DB{Host: "localhost", Port: 5432, Username: "postgres", NameDB: "bookreview", SSLMode: "disable"},
		},
		{
			name:    "bad port",
			dsn:     "postgres://u@db:port/x",
			wantErr: true,
		},
		{
			name:    "bad scheme",
			dsn:     "mysql://u@db/x",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := postgres.ParseDSN(tt.dsn)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, *got)
		})
	}
}

func TestParseDSN_RoundTrip(t *testing.T) {
	t.Parallel()
	cfg := postgres.DB{Host: "db", Port: 5433, Username: "reader", Password: "secret", NameDB: "books", SSLMode: "disable"}
	got, err := postgres.ParseDSN(cfg.DSN())
	require.NoError(t, err)
	require.Equal(t, cfg, *got)
}
