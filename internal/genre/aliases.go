package genre

import "github.com/bookswapapp/bookswap-server/internal/domain"

// canonicalAliases maps common slugged variations to canonical genres.
var canonicalAliases = map[string][]domain.BookGenre{
	// Broad retailer-style categories
	"literature-fiction":      {domain.GenreFiction},
	"literature":              {domain.GenreFiction},
	"science-fiction-fantasy": {domain.GenreSciFi, domain.GenreFantasy},
	"mystery-thriller":        {domain.GenreMystery, domain.GenreThriller},
	"biographies-memoirs":     {domain.GenreBiography},
	"children-s-books":        {domain.GenreChildren},
	"travel-tourism":          {domain.GenreTravel},
	"food-wine":               {domain.GenreCooking},

	// Science fiction variations
	"science-fiction": {domain.GenreSciFi},
	"scifi":           {domain.GenreSciFi},
	"sf":              {domain.GenreSciFi},

	// Fantasy variations
	"high-fantasy": {domain.GenreFantasy},
	"epic-fantasy": {domain.GenreFantasy},

	// Combined genres
	"sci-fi-fantasy":  {domain.GenreSciFi, domain.GenreFantasy},
	"fantasy-romance": {domain.GenreFantasy, domain.GenreRomance},

	// Young readers
	"ya":          {domain.GenreChildren},
	"young-adult": {domain.GenreChildren},
	"kids":        {domain.GenreChildren},

	// Mystery/thriller
	"suspense":  {domain.GenreThriller},
	"crime":     {domain.GenreMystery},
	"whodunit":  {domain.GenreMystery},
	"detective": {domain.GenreMystery},

	// Non-fiction variations
	"nonfiction":           {domain.GenreNonFiction},
	"self-improvement":     {domain.GenreSelfHelp},
	"personal-development": {domain.GenreSelfHelp},

	// Biography variations
	"memoir":           {domain.GenreBiography},
	"autobiography":    {domain.GenreBiography},
	"biography-memoir": {domain.GenreBiography},

	// History
	"historical":         {domain.GenreHistory},
	"historical-fiction": {domain.GenreHistory, domain.GenreFiction},

	// Horror
	"scary": {domain.GenreHorror},

	// Poetry
	"poems": {domain.GenrePoetry},
	"verse": {domain.GenrePoetry},

	// Cooking
	"cookbook":  {domain.GenreCooking},
	"cookbooks": {domain.GenreCooking},
	"recipes":   {domain.GenreCooking},
}

// Normalize takes a raw genre string and returns the canonical genre(s) it
// maps to. Unknown inputs that slugify to a defined genre value are accepted
// as-is; anything else returns nil.
func Normalize(raw string) []domain.BookGenre {
	slug := Slugify(raw)
	if slug == "" {
		return nil
	}

	if canonical, ok := canonicalAliases[slug]; ok {
		return canonical
	}

	if g := domain.BookGenre(slug); g.Valid() {
		return []domain.BookGenre{g}
	}

	return nil
}
