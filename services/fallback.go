package services

import "strings"

// Canned replies used when no completion is available
const (
	CreatorReply     = "I was created by Ankit, Priyanshu & Abhishek."
	GreetingReply    = "Hello there! How can I assist you today?"
	IdentityReply    = "I'm AI Guru, a chatbot designed to assist with information and answer your questions. How can I help you?"
	UnavailableReply = "I apologize, but I'm having trouble connecting to my AI service. " +
		"I'm operating in a limited capacity right now. Please try again later or ask a different question."
)

// Rules are checked in order; the first one with a matching trigger wins.
// Matching is plain substring search, so "hi" also fires inside "this".
var fallbackRules = []struct {
	triggers []string
	reply    string
}{
	{[]string{"who created you", "who made you", "your creator"}, CreatorReply},
	{[]string{"hello", "hi", "hey"}, GreetingReply},
	{[]string{"what are you", "who are you"}, IdentityReply},
}

// Fallback picks a canned reply for text
func Fallback(text string) string {
	lower := strings.ToLower(text)
	for _, rule := range fallbackRules {
		for _, trigger := range rule.triggers {
			if strings.Contains(lower, trigger) {
				return rule.reply
			}
		}
	}
	return UnavailableReply
}
