package catalog

import "fym/proj/internal/domain/models"

var movieQuotes = []models.Quote{
	{Text: "May the Force be with you.", Movie: "Star Wars", Year: "1977", Character: "Obi-Wan Kenobi"},
	{Text: "I'll be back.", Movie: "The Terminator", Year: "1984", Character: "The Terminator"},
	{Text: "Here's looking at you, kid.", Movie: "Casablanca", Year: "1942", Character: "Rick Blaine"},
	{Text: "Life is like a box of chocolates. You never know what you're gonna get.", Movie: "Forrest Gump", Year: "1994", Character: "Forrest Gump"},
	{Text: "I'm going to make him an offer he can't refuse.", Movie: "The Godfather", Year: "1972", Character: "Don Vito Corleone"},
	{Text: "You can't handle the truth!", Movie: "A Few Good Men", Year: "1992", Character: "Colonel Nathan Jessup"},
	{Text: "I see dead people.", Movie: "The Sixth Sense", Year: "1999", Character: "Cole Sear"},
	{Text: "There's no place like home.", Movie: "The Wizard of Oz", Year: "1939", Character: "Dorothy Gale"},
	{Text: "I'm the king of the world!", Movie: "Titanic", Year: "1997", Character: "Jack Dawson"},
	{Text: "Elementary, my dear Watson.", Movie: "The Adventures of Sherlock Holmes", Year: "1939", Character: "Sherlock Holmes"},
}

func Quotes() []models.Quote {
	return append([]models.Quote(nil), movieQuotes...)
}

func (s *CatalogService) RandomQuote() models.Quote {
	return movieQuotes[s.pick(len(movieQuotes))]
}
