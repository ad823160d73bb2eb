// Package kevinify shrinks English text for LLM prompts and expands the
// result back into something readable.
//
// Compression runs each word through a fixed pipeline:
//
//  1. "and" becomes "&"
//  2. Common words are abbreviated ("please" -> "pls", "with" -> "w/")
//  3. Stopwords are dropped ("the", "just", "very", ...)
//  4. Words of six or more characters lose their inner vowels ("features" -> "ftrs")
//  5. Everything is lowercased unless KeepCase is set
//
// URLs, emails, @mentions, #hashtags and numbers are detected first and pass
// through untouched.
//
// Basic usage:
//
//	short := kevinify.Compress("Check out https://example.com and email me@example.com with questions.", nil)
//	// "check out https://example.com & email me@example.com w/ qs"
//
//	long := kevinify.Expand("pls send me docs", nil)
//	// "please send me documentation"
//
// Both directions are lossy. Tokens are matched with ASCII rules: letters
// outside A-Z act as word separators, so "café" is seen as "caf".
//
// Configuration via ~/.kevinify.yaml:
//
//	compress:
//	  keep_case: true
//	  min_length_to_shorten: 8
//	rules:
//	  abbreviations:
//	    kubernetes: k8s
package kevinify
