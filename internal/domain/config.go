package domain

// KeyPrefix namespaces every key written to the store.
const KeyPrefix = "orgdex:"

// DefaultDimensions is the embedding width of the reference deployment
// (all-MiniLM-L6-v2 compatible providers).
const DefaultDimensions = 384
