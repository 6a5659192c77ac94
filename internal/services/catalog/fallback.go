package catalog

import "fym/proj/internal/domain/models"

// Built-in records served when the provider is unavailable so that a feed
// never renders empty.

func FallbackTrending() []models.MovieRecord {
	return []models.MovieRecord{{
		ImdbID:     "1",
		Title:      "The Dark Knight",
		Year:       "2008",
		Rated:      "PG-13",
		Released:   "2008-07-18",
		Runtime:    "152 min",
		Genre:      "Action, Crime, Drama",
		Director:   "Christopher Nolan",
		Writer:     "Jonathan Nolan, Christopher Nolan",
		Actors:     "Christian Bale, Heath Ledger, Aaron Eckhart",
		Plot:       "When the menace known as the Joker wreaks havoc and chaos on the people of Gotham, Batman must accept one of the greatest psychological and physical tests of his ability to fight injustice.",
		Language:   "English",
		Country:    "USA",
		Awards:     "Won 2 Oscars. 163 wins & 163 nominations total",
		Poster:     "https://m.media-amazon.com/images/M/MV5BMTMxNTMwODM0NF5BMl5BanBnXkFtZTcwODAyMTk2Mw@@._V1_SX300.jpg",
		Ratings:    []models.Rating{},
		Metascore:  "84",
		ImdbRating: "9.0",
		ImdbVotes:  "2,847,910",
		Type:       models.TypeMovie,
		DVD:        "2008-12-09",
		BoxOffice:  "$534,987,076",
		Production: "Warner Bros.",
		Website:    models.NotAvailable,
		Response:   "True",
	}}
}

func FallbackTopRated() []models.MovieRecord {
	return []models.MovieRecord{{
		ImdbID:     "1",
		Title:      "The Shawshank Redemption",
		Year:       "1994",
		Rated:      "R",
		Released:   "1994-09-23",
		Runtime:    "142 min",
		Genre:      "Drama",
		Director:   "Frank Darabont",
		Writer:     "Stephen King, Frank Darabont",
		Actors:     "Tim Robbins, Morgan Freeman, Bob Gunton",
		Plot:       "Two imprisoned men bond over a number of years, finding solace and eventual redemption through acts of common decency.",
		Language:   "English",
		Country:    "USA",
		Awards:     "Nominated for 7 Oscars. 21 wins & 45 nominations total",
		Poster:     "https://m.media-amazon.com/images/M/MV5BNDE3ODcxYzMtY2YzZC00NmNlLWJiNDMtZDViZWM2MzIxZDYwXkEyXkFqcGdeQXVyNjAwNDU3ODQ@._V1_SX300.jpg",
		Ratings:    []models.Rating{},
		Metascore:  "82",
		ImdbRating: "9.3",
		ImdbVotes:  "2,847,910",
		Type:       models.TypeMovie,
		DVD:        "1999-12-17",
		BoxOffice:  "$28,767,189",
		Production: "Castle Rock Entertainment",
		Website:    models.NotAvailable,
		Response:   "True",
	}}
}

func FallbackRecommendations() []models.MovieRecord {
	return []models.MovieRecord{{
		ImdbID:     "1",
		Title:      "Inception",
		Year:       "2010",
		Rated:      "PG-13",
		Released:   "2010-07-16",
		Runtime:    "148 min",
		Genre:      "Action, Sci-Fi, Thriller",
		Director:   "Christopher Nolan",
		Writer:     "Christopher Nolan",
		Actors:     "Leonardo DiCaprio, Marion Cotillard, Tom Hardy",
		Plot:       "A thief who steals corporate secrets through the use of dream-sharing technology is given the inverse task of planting an idea into the mind of a C.E.O.",
		Language:   "English",
		Country:    "USA",
		Awards:     "Won 4 Oscars. 157 wins & 220 nominations total",
		Poster:     "https://m.media-amazon.com/images/M/MV5BMjAxMzY3NjcxNF5BMl5BanBnXkFtZTcwNTI5OTM0Mw@@._V1_SX300.jpg",
		Ratings:    []models.Rating{},
		Metascore:  "74",
		ImdbRating: "8.8",
		ImdbVotes:  "2,447,910",
		Type:       models.TypeMovie,
		DVD:        "2010-12-07",
		BoxOffice:  "$836,836,967",
		Production: "Warner Bros.",
		Website:    models.NotAvailable,
		Response:   "True",
	}}
}
