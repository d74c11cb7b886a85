package location

import "fmt"

// historyPrompt is the fixed template sent to the text-generation model. The
// ~200 word bound lives in the prompt, not in the adapter.
func historyPrompt(locationName string) string {
	return fmt.Sprintf(
		"Write a brief historical overview of %s. Include key historical events, "+
			"cultural significance, and important landmarks. Keep it informative but "+
			"concise, around 200 words.", locationName)
}

// historyFallback replaces a failed or empty generation.
func historyFallback(locationName string) string {
	return fmt.Sprintf("%s has a rich history and cultural heritage that spans many centuries.", locationName)
}

func descriptionFallback(locationName string) string {
	return fmt.Sprintf("Welcome to %s! This beautiful location offers a rich blend of culture, history, and modern attractions.", locationName)
}

func fullDescriptionFallback(locationName string) string {
	return fmt.Sprintf("%s is a vibrant destination known for its unique character and local attractions, offering visitors an authentic experience of the region's culture and heritage.", locationName)
}
