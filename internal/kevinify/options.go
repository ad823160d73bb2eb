package kevinify

// DefaultMinLengthToShorten is the shortest token that is vowel-stripped.
const DefaultMinLengthToShorten = 6

// minShortenedLength rejects vowel-stripped forms shorter than this.
const minShortenedLength = 3

// CompressOptions configures Compress. Start from DefaultCompressOptions and
// change what you need; a nil *CompressOptions means all defaults. The zero
// value is not the default: it turns off stopword removal, entity protection,
// shortening and the ampersand rewrite.
type CompressOptions struct {
	RemoveStopwords     bool
	PreserveEntities    bool // keep URLs, emails, @mentions, #hashtags and numbers
	KeepCase            bool
	ShortenLongWords    bool
	MinLengthToShorten  int // <= 0 means DefaultMinLengthToShorten
	AggressiveAmpersand bool

	// PhraseAbbreviations enables lookahead for multi-word keys such as
	// "thank you". Off by default: the per-token pass never sees them.
	PhraseAbbreviations bool

	// Nil tables fall back to the built-in ones.
	Abbreviations *Abbreviations
	Stopwords     WordSet
	ProtectWords  WordSet
}

// DefaultCompressOptions returns the default compression settings.
func DefaultCompressOptions() CompressOptions {
	return CompressOptions{
		RemoveStopwords:     true,
		PreserveEntities:    true,
		KeepCase:            false,
		ShortenLongWords:    true,
		MinLengthToShorten:  DefaultMinLengthToShorten,
		AggressiveAmpersand: true,
	}
}

// resolve returns a copy of opts with every unset table and threshold
// filled in.
func (opts *CompressOptions) resolve() CompressOptions {
	o := DefaultCompressOptions()
	if opts != nil {
		o = *opts
	}
	if o.MinLengthToShorten <= 0 {
		o.MinLengthToShorten = DefaultMinLengthToShorten
	}
	if o.Abbreviations == nil {
		o.Abbreviations = defaultAbbreviations
	}
	if o.Stopwords == nil {
		o.Stopwords = defaultStopwords
	}
	if o.ProtectWords == nil {
		o.ProtectWords = defaultProtectWords
	}
	return o
}

// ExpandOptions configures Expand. A nil *ExpandOptions means all defaults.
type ExpandOptions struct {
	Abbreviations    *Abbreviations // nil means the built-in table
	PreserveEntities bool
	Collision        CollisionPolicy
}

// DefaultExpandOptions returns the default expansion settings.
func DefaultExpandOptions() ExpandOptions {
	return ExpandOptions{
		PreserveEntities: true,
		Collision:        LastWriteWins,
	}
}

func (opts *ExpandOptions) resolve() ExpandOptions {
	o := DefaultExpandOptions()
	if opts != nil {
		o = *opts
	}
	if o.Abbreviations == nil {
		o.Abbreviations = defaultAbbreviations
	}
	return o
}
