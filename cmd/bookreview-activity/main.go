package main

import (
	stdLog "log"

	"github.com/joho/godotenv"

	"github.com/Astemirdum/bookreview-service/bookreview/activity"
	"github.com/Astemirdum/bookreview-service/bookreview/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		stdLog.Println("no .env file, using process environment")
	}
	if err := activity.Run(config.NewConfig()); err != nil {
		stdLog.Fatal(err)
	}
}
