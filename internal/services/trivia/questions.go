package trivia

import "github.com/mcoot/santaworkshop/internal/model"

// Questions is the default question set
var Questions = []model.TriviaQuestion{
	{
		Text:    "What is the name of Santa's most famous reindeer?",
		Options: []string{"Dasher", "Rudolph", "Comet", "Vixen"},
		Answer:  1,
	},
	{
		Text:    "Which country started the tradition of putting up a Christmas tree?",
		Options: []string{"Germany", "United States", "France", "England"},
		Answer:  0,
	},
	{
		Text:    "What treat do children traditionally leave for Santa?",
		Options: []string{"Pizza", "Carrots", "Cookies and Milk", "Hot Cocoa"},
		Answer:  2,
	},
	{
		Text:    "What color is Santa's suit?",
		Options: []string{"Blue", "Green", "Red", "Yellow"},
		Answer:  2,
	},
	{
		Text:    "How many reindeer usually pull Santa's sleigh (counting Rudolph)?",
		Options: []string{"8", "9", "10", "12"},
		Answer:  1,
	},
}
