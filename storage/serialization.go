// Copyright 2026 Constellar Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"

	"github.com/constellar/paperflow/core"
)

// Timestamps are stored as Unix microseconds; the zero time is stored as 0.

func timeToMicro(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMicro()
}

func microToTime(v int64) time.Time {
	if v == 0 {
		return time.Time{}
	}
	return time.UnixMicro(v).UTC()
}

func paperRecordSize(record *core.PaperRecord) int {
	return ord.String.Size(record.ArxivID) +
		ord.String.Size(record.PaperURL) +
		ord.String.Size(record.Title) +
		ord.String.Size(string(record.Status)) +
		ord.String.Size(record.ErrorMessage) +
		ord.String.Size(record.Markdown) +
		ord.String.Size(record.DensifiedMarkdown) +
		varint.Int.Size(record.WordCount) +
		varint.Int.Size(record.PageCount) +
		varint.Int64.Size(timeToMicro(record.CreatedAt)) +
		varint.Int64.Size(timeToMicro(record.UpdatedAt))
}

// MarshalPaperRecord serializes a PaperRecord to bytes.
func MarshalPaperRecord(record *core.PaperRecord) []byte {
	buf := make([]byte, paperRecordSize(record))
	n := ord.String.Marshal(record.ArxivID, buf)
	n += ord.String.Marshal(record.PaperURL, buf[n:])
	n += ord.String.Marshal(record.Title, buf[n:])
	n += ord.String.Marshal(string(record.Status), buf[n:])
	n += ord.String.Marshal(record.ErrorMessage, buf[n:])
	n += ord.String.Marshal(record.Markdown, buf[n:])
	n += ord.String.Marshal(record.DensifiedMarkdown, buf[n:])
	n += varint.Int.Marshal(record.WordCount, buf[n:])
	n += varint.Int.Marshal(record.PageCount, buf[n:])
	n += varint.Int64.Marshal(timeToMicro(record.CreatedAt), buf[n:])
	varint.Int64.Marshal(timeToMicro(record.UpdatedAt), buf[n:])
	return buf
}

// UnmarshalPaperRecord deserializes a PaperRecord from bytes.
func UnmarshalPaperRecord(data []byte) (*core.PaperRecord, error) {
	record := &core.PaperRecord{}
	n := 0

	fields := []struct {
		name string
		dst  *string
	}{
		{"arxiv id", &record.ArxivID},
		{"paper url", &record.PaperURL},
		{"title", &record.Title},
	}
	for _, f := range fields {
		v, m, err := ord.String.Unmarshal(data[n:])
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrSerializationFailed, f.name, err)
		}
		*f.dst = v
		n += m
	}

	status, m, err := ord.String.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: status: %w", ErrSerializationFailed, err)
	}
	record.Status = core.Status(status)
	n += m

	rest := []struct {
		name string
		dst  *string
	}{
		{"error message", &record.ErrorMessage},
		{"markdown", &record.Markdown},
		{"densified markdown", &record.DensifiedMarkdown},
	}
	for _, f := range rest {
		v, m, err := ord.String.Unmarshal(data[n:])
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrSerializationFailed, f.name, err)
		}
		*f.dst = v
		n += m
	}

	record.WordCount, m, err = varint.Int.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: word count: %w", ErrSerializationFailed, err)
	}
	n += m

	record.PageCount, m, err = varint.Int.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: page count: %w", ErrSerializationFailed, err)
	}
	n += m

	created, m, err := varint.Int64.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: created at: %w", ErrSerializationFailed, err)
	}
	record.CreatedAt = microToTime(created)
	n += m

	updated, _, err := varint.Int64.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: updated at: %w", ErrSerializationFailed, err)
	}
	record.UpdatedAt = microToTime(updated)

	return record, nil
}
