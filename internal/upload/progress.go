// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package upload

import (
	"bytes"
	"io"
)

func newByteReader(data []byte) io.Reader {
	return bytes.NewReader(data)
}

// progressReader reports read progress of a known-size payload as a
// 0-100 percentage. Reported values never decrease and a fully drained
// reader reports 100 exactly once.
type progressReader struct {
	r        io.Reader
	total    int64
	read     int64
	lastPct  int
	progress ProgressFunc
}

func newProgressReader(data []byte, progress ProgressFunc) *progressReader {
	return &progressReader{
		r:        bytes.NewReader(data),
		total:    int64(len(data)),
		lastPct:  -1,
		progress: progress,
	}
}

func (pr *progressReader) Read(p []byte) (int, error) {
	n, err := pr.r.Read(p)
	if n > 0 {
		pr.read += int64(n)
		pr.report()
	}
	return n, err
}

func (pr *progressReader) report() {
	if pr.progress == nil || pr.total <= 0 {
		return
	}
	pct := int(pr.read * 100 / pr.total)
	if pct > 100 {
		pct = 100
	}
	if pct > pr.lastPct {
		pr.lastPct = pct
		pr.progress(pct)
	}
}
