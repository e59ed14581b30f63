package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// Serializers for persisted records. Timestamps are stored as Unix
// microseconds, so values round-trip at microsecond precision.
var (
	TermMUS         = termMUS{}
	LibraryStatsMUS = libraryStatsMUS{}
	SearchCountMUS  = searchCountMUS{}
)

type timeMUS struct{}

func (timeMUS) Marshal(t time.Time, bs []byte) (n int) {
	return varint.Int64.Marshal(unixMicro(t), bs)
}

func (timeMUS) Unmarshal(bs []byte) (t time.Time, n int, err error) {
	v, n, err := varint.Int64.Unmarshal(bs)
	if err != nil {
		return
	}
	if v != 0 {
		t = time.UnixMicro(v).UTC()
	}
	return
}

func (timeMUS) Size(t time.Time) int {
	return varint.Int64.Size(unixMicro(t))
}

func (timeMUS) Skip(bs []byte) (n int, err error) {
	return varint.Int64.Skip(bs)
}

func unixMicro(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMicro()
}

var timeSer = timeMUS{}

type stringsMUS struct{}

func (stringsMUS) Marshal(v []string, bs []byte) (n int) {
	n = varint.Int.Marshal(len(v), bs)
	for _, s := range v {
		n += ord.String.Marshal(s, bs[n:])
	}
	return
}

func (stringsMUS) Unmarshal(bs []byte) (v []string, n int, err error) {
	length, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	if length < 0 || length > len(bs) {
		err = errInvalidLength
		return
	}
	v = make([]string, 0, length)
	for range length {
		s, n1, err1 := ord.String.Unmarshal(bs[n:])
		n += n1
		if err1 != nil {
			return nil, n, err1
		}
		v = append(v, s)
	}
	return
}

func (stringsMUS) Size(v []string) (size int) {
	size = varint.Int.Size(len(v))
	for _, s := range v {
		size += ord.String.Size(s)
	}
	return
}

func (stringsMUS) Skip(bs []byte) (n int, err error) {
	length, n, err := varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	for range length {
		n1, err1 := ord.String.Skip(bs[n:])
		n += n1
		if err1 != nil {
			return n, err1
		}
	}
	return
}

var stringsSer = stringsMUS{}

type termMUS struct{}

func (termMUS) Marshal(v Term, bs []byte) (n int) {
	n = ord.String.Marshal(v.Key, bs)
	n += stringsSer.Marshal(v.DisplayVariants, bs[n:])
	n += raw.Float64.Marshal(v.Frequency, bs[n:])
	n += timeSer.Marshal(v.CreatedAt, bs[n:])
	n += timeSer.Marshal(v.LastUsedAt, bs[n:])
	return
}

func (termMUS) Unmarshal(bs []byte) (v Term, n int, err error) {
	var n1 int
	v.Key, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	v.DisplayVariants, n1, err = stringsSer.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Frequency, n1, err = raw.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.CreatedAt, n1, err = timeSer.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.LastUsedAt, n1, err = timeSer.Unmarshal(bs[n:])
	n += n1
	return
}

func (termMUS) Size(v Term) (size int) {
	size = ord.String.Size(v.Key)
	size += stringsSer.Size(v.DisplayVariants)
	size += raw.Float64.Size(v.Frequency)
	size += timeSer.Size(v.CreatedAt)
	return size + timeSer.Size(v.LastUsedAt)
}

type libraryStatsMUS struct{}

func (libraryStatsMUS) Marshal(v LibraryStats, bs []byte) (n int) {
	n = varint.Uint64.Marshal(v.TotalSearches, bs)
	n += varint.Int64.Marshal(v.UniqueTermCount, bs[n:])
	n += timeSer.Marshal(v.LastUpdatedAt, bs[n:])
	return
}

func (libraryStatsMUS) Unmarshal(bs []byte) (v LibraryStats, n int, err error) {
	var n1 int
	v.TotalSearches, n, err = varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	v.UniqueTermCount, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.LastUpdatedAt, n1, err = timeSer.Unmarshal(bs[n:])
	n += n1
	return
}

func (libraryStatsMUS) Size(v LibraryStats) (size int) {
	size = varint.Uint64.Size(v.TotalSearches)
	size += varint.Int64.Size(v.UniqueTermCount)
	return size + timeSer.Size(v.LastUpdatedAt)
}

type searchCountMUS struct{}

func (searchCountMUS) Marshal(v SearchCount, bs []byte) (n int) {
	n = ord.String.Marshal(v.Query, bs)
	n += varint.Uint64.Marshal(v.Count, bs[n:])
	n += timeSer.Marshal(v.LastSearchedAt, bs[n:])
	return
}

func (searchCountMUS) Unmarshal(bs []byte) (v SearchCount, n int, err error) {
	var n1 int
	v.Query, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Count, n1, err = varint.Uint64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.LastSearchedAt, n1, err = timeSer.Unmarshal(bs[n:])
	n += n1
	return
}

func (searchCountMUS) Size(v SearchCount) (size int) {
	size = ord.String.Size(v.Query)
	size += varint.Uint64.Size(v.Count)
	return size + timeSer.Size(v.LastSearchedAt)
}
