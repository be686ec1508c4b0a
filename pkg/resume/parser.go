// Package resume extracts plain text from uploaded resumes.
package resume

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	pdf "github.com/ledongthuc/pdf"
)

var ErrUnsupported = errors.New("unsupported file format: only pdf and docx are allowed")

var (
	reTags   = regexp.MustCompile(`<[^>]+>`)
	reSpaces = regexp.MustCompile(`\s+`)
)

// ParseText extracts text from a .pdf or .docx file and collapses all
// whitespace to single spaces.
func ParseText(filename string, data []byte) (string, error) {
	var (
		txt string
		err error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		txt, err = fromPDF(data)
	case ".docx":
		txt, err = fromDocx(data)
	default:
		return "", ErrUnsupported
	}
	if err != nil {
		return "", err
	}
	return collapse(txt), nil
}

func fromPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	rs, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err = io.Copy(&buf, rs); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func fromDocx(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		defer rc.Close()
		doc, err := io.ReadAll(rc)
		if err != nil {
			return "", err
		}
		xml := strings.ReplaceAll(string(doc), "</w:p>", "\n")
		xml = strings.ReplaceAll(xml, "<w:tab/>", "\t")
		return reTags.ReplaceAllString(xml, " "), nil
	}
	return "", errors.New("no document.xml found in docx")
}

func collapse(s string) string {
	s = strings.ReplaceAll(s, "\u00A0", " ")
	return strings.TrimSpace(reSpaces.ReplaceAllString(s, " "))
}
