package domain

// BookGenre is a canonical genre value a general book can carry.
type BookGenre string

const (
	GenreFiction    BookGenre = "fiction"
	GenreNonFiction BookGenre = "non-fiction"
	GenreMystery    BookGenre = "mystery"
	GenreThriller   BookGenre = "thriller"
	GenreRomance    BookGenre = "romance"
	GenreSciFi      BookGenre = "sci-fi"
	GenreFantasy    BookGenre = "fantasy"
	GenreHorror     BookGenre = "horror"
	GenreBiography  BookGenre = "biography"
	GenreHistory    BookGenre = "history"
	GenrePoetry     BookGenre = "poetry"
	GenreSelfHelp   BookGenre = "self-help"
	GenreChildren   BookGenre = "children"
	GenreTravel     BookGenre = "travel"
	GenreCooking    BookGenre = "cooking"
)

// Valid checks if the value is a defined genre.
func (g BookGenre) Valid() bool {
	switch g {
	case GenreFiction, GenreNonFiction, GenreMystery, GenreThriller,
		GenreRomance, GenreSciFi, GenreFantasy, GenreHorror, GenreBiography,
		GenreHistory, GenrePoetry, GenreSelfHelp, GenreChildren,
		GenreTravel, GenreCooking:
		return true
	default:
		return false
	}
}

// AllGenres lists every defined genre value.
func AllGenres() []BookGenre {
	return []BookGenre{
		GenreFiction, GenreNonFiction, GenreMystery, GenreThriller,
		GenreRomance, GenreSciFi, GenreFantasy, GenreHorror, GenreBiography,
		GenreHistory, GenrePoetry, GenreSelfHelp, GenreChildren,
		GenreTravel, GenreCooking,
	}
}
