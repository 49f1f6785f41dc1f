package entity

import "time"

// NoBody marks an article whose body could not be extracted. Records carrying
// it are excluded from the assembled dataset.
const NoBody = "N/A"

// Article is one assembled editorial article.
type Article struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Date            *time.Time `json:"date"`
	Link            string     `json:"link"`
	Body            string     `json:"body"`
	MentionedPeople []string   `json:"mentioned_people"`
	Tag             string     `json:"tag"`
	Author          string     `json:"author"`
}

// DateString renders the publish date for the tabular dataset; empty when the
// source text was unparseable.
func (a Article) DateString() string {
	if a.Date == nil {
		return ""
	}
	return a.Date.Format("2006-01-02")
}
