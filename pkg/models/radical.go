package models

// Radical represents one entry of the fixed 60-radical study set
type Radical struct {
	ID       int      `json:"id"`
	Name     string   `json:"vn"`       // Vietnamese name of the radical
	Radical  string   `json:"radical"`  // Glyph, with variant forms where they exist
	Pinyin   string   `json:"pinyin"`   // Romanized pronunciation with tone marks
	Meaning  string   `json:"meaning"`  // Short meaning gloss
	Mnemonic string   `json:"mnemonic"` // Pictographic memory aid
	Examples []string `json:"examples"` // Common characters using the radical
}
