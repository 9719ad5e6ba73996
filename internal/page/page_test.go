package page

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeContent(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "portfolio.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write content: %v", err)
	}
	return path
}

func TestLoadValidPage(t *testing.T) {
	path := writeContent(t, `
title: Test Person
nav:
  - label: About
    target: "#about"
  - label: Contact
    target: contact
sections:
  - id: about
    title: About
    blocks:
      - paragraph: hello
      - skill:
          name: Go
  - id: contact
    title: Contact
    blocks:
      - form:
          fields:
            - name: email
              label: Email
`)
	p, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.Title != "Test Person" {
		t.Fatalf("title = %q", p.Title)
	}
	// Fragment prefixes are stripped so nav targets match section ids.
	if p.Nav[0].Target != "about" {
		t.Fatalf("nav target = %q, want about", p.Nav[0].Target)
	}
	if !p.LinkTarget("about") || !p.LinkTarget("contact") {
		t.Fatalf("expected nav links for about and contact")
	}
	form, sectionID, ok := p.ContactForm()
	if !ok || sectionID != "contact" {
		t.Fatalf("contact form lookup = (%v, %q)", ok, sectionID)
	}
	if len(form.Fields) != 1 || form.Fields[0].Name != "email" {
		t.Fatalf("unexpected form fields: %+v", form.Fields)
	}
	if kind := p.Sections[0].Blocks[1].Kind(); kind != KindSkill {
		t.Fatalf("block kind = %d, want KindSkill", kind)
	}
}

func TestLoadRejectsDuplicateSectionIDs(t *testing.T) {
	path := writeContent(t, `
sections:
  - id: about
    title: About
    blocks:
      - paragraph: one
  - id: about
    title: Again
    blocks:
      - paragraph: two
`)
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "duplicate id") {
		t.Fatalf("expected duplicate id error, got %v", err)
	}
}

func TestLoadRejectsDanglingNavLink(t *testing.T) {
	path := writeContent(t, `
nav:
  - label: Work
    target: work
sections:
  - id: about
    title: About
    blocks:
      - paragraph: hello
`)
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "unknown section") {
		t.Fatalf("expected dangling nav link error, got %v", err)
	}
}

func TestLoadRejectsFormWithoutFields(t *testing.T) {
	path := writeContent(t, `
sections:
  - id: contact
    title: Contact
    blocks:
      - form:
          fields: []
`)
	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "no fields") {
		t.Fatalf("expected empty form error, got %v", err)
	}
}

func TestPageWithoutFormReportsNone(t *testing.T) {
	path := writeContent(t, `
sections:
  - id: about
    title: About
    blocks:
      - paragraph: hello
`)
	p, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, _, ok := p.ContactForm(); ok {
		t.Fatalf("expected no contact form")
	}
}

func TestEnsureContentWritesSampleOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultContentFile)
	if err := EnsureContent(path); err != nil {
		t.Fatalf("ensure content: %v", err)
	}
	p, err := Load(path)
	if err != nil {
		t.Fatalf("sample content must validate: %v", err)
	}
	if _, _, ok := p.ContactForm(); !ok {
		t.Fatalf("sample content should include a contact form")
	}
	// A second call must not clobber user edits.
	if err := os.WriteFile(path, []byte("title: Edited\nsections:\n  - id: a\n    title: A\n    blocks:\n      - paragraph: x\n"), 0o644); err != nil {
		t.Fatalf("edit content: %v", err)
	}
	if err := EnsureContent(path); err != nil {
		t.Fatalf("ensure content again: %v", err)
	}
	p, err = Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if p.Title != "Edited" {
		t.Fatalf("EnsureContent overwrote user edits")
	}
}
