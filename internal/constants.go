package internal

// DefaultLanguage is the translation fallback for keys missing in the user's language
const DefaultLanguage = "en-US"
