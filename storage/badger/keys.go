package badger

// Key prefixes for different data types
const (
	termPrefix        = "term"
	libraryStatsKey   = "libstats"
	searchCountPrefix = "srchcnt"
)

// makeTermKey generates a key for a term by normalized key.
// Format: term:key
// Keys sort the same way their normalized strings do, so a term-key prefix
// also works as an iterator prefix.
func makeTermKey(key string) []byte {
	prefix := termPrefix + ":"
	buf := make([]byte, len(prefix)+len(key))
	offset := copy(buf, prefix)
	copy(buf[offset:], key)
	return buf
}

// termKeyPrefix returns the iterator prefix for all terms.
func termKeyPrefix() []byte {
	return []byte(termPrefix + ":")
}

// makeSearchCountKey generates a key for a per-query search statistic.
// Format: srchcnt:query
func makeSearchCountKey(query string) []byte {
	return []byte(searchCountPrefix + ":" + query)
}

// searchCountKeyPrefix returns the iterator prefix for all search statistics.
func searchCountKeyPrefix() []byte {
	return []byte(searchCountPrefix + ":")
}
