// Package models defines the data structures shared by the scraper and the store.
package models

// Book is one extracted catalog entry. Title is kept verbatim from the source
// markup, Price is the parsed amount with the currency symbol stripped and
// Rating is the literal star-count label ("One".."Five").
type Book struct {
	Title        string  `csv:"title" json:"title"`
	Price        float64 `csv:"price" json:"price"`
	Availability string  `csv:"availability" json:"availability"`
	Rating       string  `csv:"rating" json:"rating"`
}

// BookRow is a persisted Book together with its store-assigned id.
type BookRow struct {
	ID int64 `csv:"id" json:"id"`
	Book
}
