package domain

// Answers holds a participant's questionnaire. Zero or one record per
// snowflake; a re-submission overwrites all six fields.
type Answers struct {
	UserSnowflake string `json:"-"`
	Game          string `json:"game"`
	Colour        string `json:"colour"`
	Song          string `json:"song"`
	Film          string `json:"film"`
	Food          string `json:"food"`
	Hobby         string `json:"hobby"`
}
