package demo

// fixture is one recording in the built-in demo catalog. The demo stream
// provider deliberately lists titles with small punctuation and duration
// divergences so the cross-provider fuzzy matching path gets exercised
// end to end.
type fixture struct {
	catalogID  string
	streamID   string
	title      string
	streamName string // title as the stream side knows it
	artist     string
	album      string
	duration   int // seconds, catalog side
	streamSecs int // seconds, stream side
	isrc       string
	genre      string
	year       int
}

var fixtures = []fixture{
	{
		catalogID:  "dc-1001",
		streamID:   "ds-9001",
		title:      "Billie Jean",
		streamName: "Billie Jean",
		artist:     "Michael Jackson",
		album:      "Thriller",
		duration:   294,
		streamSecs: 294,
		isrc:       "USSM18200341",
		genre:      "Pop",
		year:       1982,
	},
	{
		catalogID:  "dc-1002",
		streamID:   "ds-9002",
		title:      "Beat It",
		streamName: "Beat It!",
		artist:     "Michael Jackson",
		album:      "Thriller",
		duration:   258,
		streamSecs: 260,
		isrc:       "USSM18200340",
		genre:      "Pop",
		year:       1982,
	},
	{
		catalogID:  "dc-1003",
		streamID:   "ds-9003",
		title:      "Uptown Funk",
		streamName: "Uptown Funk (feat. Bruno Mars)",
		artist:     "Mark Ronson",
		album:      "Uptown Special",
		duration:   270,
		streamSecs: 269,
		isrc:       "GBARL1400786",
		genre:      "Funk",
		year:       2014,
	},
	{
		catalogID:  "dc-1004",
		streamID:   "ds-9004",
		title:      "Let It Be",
		streamName: "let it be",
		artist:     "The Beatles",
		album:      "Let It Be",
		duration:   243,
		streamSecs: 246,
		isrc:       "GBAYE0601648",
		genre:      "Rock",
		year:       1970,
	},
	{
		catalogID:  "dc-1005",
		streamID:   "ds-9005",
		title:      "Džanum",
		streamName: "Dzanum",
		artist:     "Teya Dora",
		album:      "Džanum",
		duration:   186,
		streamSecs: 185,
		isrc:       "QZTB32300101",
		genre:      "Pop",
		year:       2023,
	},
}
