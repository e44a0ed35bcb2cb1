package seed

import "github.com/Astemirdum/bookreview-service/bookreview/internal/model"

// User ids equal usernames, the same rule the client applies on login.
// Only the username "admin" logs in as ADMIN on the client, so it is seeded as one.
var users = []model.UpsertUserRequest{
	{UserID: "admin_alice", Username: "admin_alice", Role: model.RoleAdmin},
	{UserID: "bookworm_bob", Username: "bookworm_bob", Role: model.RoleUser},
	{UserID: "reader_carol", Username: "reader_carol", Role: model.RoleUser},
	{UserID: "critic_dave", Username: "critic_dave", Role: model.RoleUser},
	{UserID: "author_eve", Username: "author_eve", Role: model.RoleUser},
	{UserID: "admin", Username: "admin", Role: model.RoleAdmin},
}

type bookSeed struct {
	model.CreateBookRequest
	creator int
}

var books = []bookSeed{
	{creator: 0, CreateBookRequest: model.CreateBookRequest{
		Name:        "The Great Gatsby",
		Description: "A classic American novel set in the Jazz Age, exploring themes of wealth, love, and the American Dream.",
		Author:      "F. Scott Fitzgerald",
		Tags:        []string{"classic", "american literature", "jazz age", "romance", "tragedy"},
	}},
	{creator: 1, CreateBookRequest: model.CreateBookRequest{
		Name:        "To Kill a Mockingbird",
		Description: "A gripping tale of racial injustice and childhood innocence in the American South.",
		Author:      "Harper Lee",
		Tags:        []string{"classic", "social justice", "coming of age", "american south", "legal drama"},
	}},
	{creator: 1, CreateBookRequest: model.CreateBookRequest{
		Name:        "1984",
		Description: "A dystopian social science fiction novel about totalitarian control and surveillance.",
		Author:      "George Orwell",
		Tags:        []string{"dystopian", "science fiction", "political", "surveillance", "totalitarianism"},
	}},
	{creator: 2, CreateBookRequest: model.CreateBookRequest{
		Name:        "Pride and Prejudice",
		Description: "A romantic novel that critiques the British landed gentry at the end of the 18th century.",
		Author:      "Jane Austen",
		Tags:        []string{"romance", "classic", "british literature", "social commentary", "regency era"},
	}},
	{creator: 2, CreateBookRequest: model.CreateBookRequest{
		Name:        "The Catcher in the Rye",
		Description: "A controversial novel about teenage rebellion and alienation in post-war America.",
		Author:      "J.D. Salinger",
		Tags:        []string{"coming of age", "american literature", "teenage angst", "controversial", "modern classic"},
	}},
	{creator: 4, CreateBookRequest: model.CreateBookRequest{
		Name:        "Dune",
		Description: "An epic science fiction novel set in a distant future amidst a feudal interstellar society.",
		Author:      "Frank Herbert",
		Tags:        []string{"science fiction", "epic", "space opera", "politics", "ecology"},
	}},
	{creator: 4, CreateBookRequest: model.CreateBookRequest{
		Name:        "The Lord of the Rings",
		Description: "An epic high fantasy novel following the quest to destroy the One Ring.",
		Author:      "J.R.R. Tolkien",
		Tags:        []string{"fantasy", "epic", "adventure", "mythology", "good vs evil"},
	}},
	{creator: 0, CreateBookRequest: model.CreateBookRequest{
		Name:        "Brave New World",
		Description: "A dystopian novel exploring a technologically advanced future society.",
		Author:      "Aldous Huxley",
		Tags:        []string{"dystopian", "science fiction", "technology", "society", "philosophy"},
	}},
}

type reviewSeed struct {
	data   string
	author int
	book   int
}

var reviews = []reviewSeed{
	{book: 0, author: 1, data: "A masterpiece of American literature. Fitzgerald's prose is absolutely beautiful and the themes are timeless. The symbolism of the green light still gives me chills."},
	{book: 0, author: 3, data: "Overrated in my opinion. The characters are all unlikeable and the plot drags. I understand its literary significance but it didn't resonate with me personally."},
	{book: 1, author: 2, data: "An essential read that tackles difficult subjects with grace and wisdom. Scout's perspective makes complex social issues accessible and deeply moving."},
	{book: 1, author: 4, data: "Harper Lee created something truly special here. The courtroom scenes are intense and the character development is phenomenal. A book that stays with you."},
	{book: 2, author: 0, data: "Terrifyingly relevant today. Orwell's vision of surveillance and thought control feels prophetic. Big Brother is watching, indeed."},
	{book: 2, author: 3, data: "A chilling dystopia that makes you appreciate freedom. The concept of doublethink is brilliantly executed. Required reading for understanding totalitarianism."},
	{book: 3, author: 1, data: "Jane Austen's wit and social commentary are unmatched. Elizabeth Bennet is one of literature's greatest heroines. The romance is perfectly crafted."},
	{book: 3, author: 4, data: "A delightful read with sharp observations about society and human nature. The dialogue sparkles with intelligence and humor."},
	{book: 4, author: 0, data: "Holden Caulfield is the perfect representation of teenage angst and alienation. Salinger captures the voice of youth struggling with an adult world."},
	{book: 5, author: 1, data: "An incredible world-building achievement. Herbert created a complex universe with deep political and ecological themes. The spice must flow!"},
	{book: 5, author: 2, data: "Dense but rewarding. The political intrigue and desert setting create an immersive experience. Paul's journey is compelling and complex."},
	{book: 6, author: 3, data: "The gold standard of fantasy literature. Tolkien's world-building is unparalleled and the themes of friendship and sacrifice are deeply moving."},
	{book: 6, author: 0, data: "An epic adventure that defined the fantasy genre. The fellowship's journey is both thrilling and emotionally resonant. A true masterpiece."},
	{book: 7, author: 2, data: "Huxley's vision of a pleasure-seeking society is both fascinating and disturbing. The contrast with 1984 makes for interesting philosophical discussions."},
	{book: 7, author: 4, data: "A thought-provoking exploration of happiness versus freedom. The soma-dependent society feels uncomfortably plausible in our modern world."},
}
