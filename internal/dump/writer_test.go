package dump

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/RecoveryAshes/sitescrape/internal/models"
)

func TestWrite_Format(t *testing.T) {
	pages := []*models.PageRecord{
		{URL: "https://x/a", Headings: []string{"H1", "H2"}, Paragraphs: []string{"P1"}},
		{URL: "https://x/b"},
	}

	var buf bytes.Buffer
	if err := Write(&buf, pages); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	divider := strings.Repeat("=", 60)
	want := "\nURL: https://x/a\nHeadings:\nH1\nH2\nParagraphs:\nP1\n\n" + divider + "\n" +
		"\nURL: https://x/b\nHeadings:\n\nParagraphs:\n\n\n" + divider + "\n"

	if buf.String() != want {
		t.Errorf("Write() =\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestWriteFile_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.txt")
	if err := os.WriteFile(path, []byte(strings.Repeat("old content\n", 100)), 0644); err != nil {
		t.Fatal(err)
	}

	data := models.NewSiteData()
	data.Put(&models.PageRecord{URL: "https://x/a", Paragraphs: []string{"new"}})

	if err := WriteFile(path, data); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(content), "old content") {
		t.Error("旧内容未被完全覆盖")
	}
	if !strings.Contains(string(content), "URL: https://x/a") {
		t.Error("缺少新内容")
	}
}

func TestWriteFile_BadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "site.txt")
	if err := WriteFile(path, models.NewSiteData()); err == nil {
		t.Error("目录不存在时应返回错误")
	}
}

func TestRoundTrip(t *testing.T) {
	pages := []*models.PageRecord{
		{
			URL:        "https://www.example.com",
			Headings:   []string{"Home", "Grid intelligence", "Why it matters"},
			Paragraphs: []string{"First paragraph.", "© 2024 Example", "Second paragraph."},
		},
		{
			URL:        "https://www.example.com/about-us",
			Headings:   []string{"Our team"},
			Paragraphs: nil,
		},
		{
			URL:        "https://www.example.com/contact",
			Headings:   nil,
			Paragraphs: []string{"Write to us.", "---", "LinkedIn"},
		},
	}

	var buf bytes.Buffer
	if err := Write(&buf, pages); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	filter := defaultFilter()
	records, _, err := Parse(&buf, filter)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if len(records) != len(pages) {
		t.Fatalf("记录数 = %d, want %d", len(records), len(pages))
	}

	for i, page := range pages {
		rec := records[i]
		if rec.URL != page.URL {
			t.Errorf("第%d条URL = %q, want %q", i, rec.URL, page.URL)
		}

		wantHeadings := []string{}
		for _, h := range page.Headings {
			if !filter.IsGarbage(h) {
				wantHeadings = append(wantHeadings, h)
			}
		}
		if !reflect.DeepEqual(rec.Headings, wantHeadings) {
			t.Errorf("第%d条Headings = %q, want %q", i, rec.Headings, wantHeadings)
		}

		var kept []string
		for _, p := range page.Paragraphs {
			if !filter.IsGarbage(p) {
				kept = append(kept, p)
			}
		}
		if rec.Content != strings.Join(kept, " ") {
			t.Errorf("第%d条Content = %q, want %q", i, rec.Content, strings.Join(kept, " "))
		}
	}
}
