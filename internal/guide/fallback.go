package guide

import "fmt"

// Fallback builds a minimal valid document for a query whose generation
// could not be recovered. It is a pure function of the query, so the
// generation endpoint can always answer with a usable guide instead of an
// error.
func Fallback(query string) Document {
	return Document{
		Title: "How to " + query,
		Sections: []Section{
			{
				Title: "Introduction",
				Type:  SectionText,
				Content: []string{
					fmt.Sprintf("We were not able to put together a complete guide about %q this time.", query),
					"This usually happens when the topic is very broad or the generated draft could not be read back cleanly.",
				},
			},
			{
				Title:   "Tips for Better Results",
				Type:    SectionList,
				Content: []string{},
				Items: []string{
					"Try the same search again in a moment.",
					"Rephrase the query with a specific goal, for example \"fix a dripping kitchen tap\".",
					"Keep the query short and concrete rather than a full sentence.",
					"Split broad topics into smaller how-to questions.",
				},
			},
			{
				Title: "In the Meantime",
				Type:  SectionText,
				Content: []string{
					"Have a look at the recently generated guides for related topics while you retry.",
				},
			},
		},
	}
}
