package common

// Keys of the metadata collection.
const (
	MetadataStoreID     = "store_id"
	MetadataKeyVerifier = "key_verifier"
)

// DefaultSecret is the application secret the store was historically keyed with.
const DefaultSecret = "user_token"
