// internal/page/page.go
//
// This package models the portfolio page content: nav links, sections, and
// the blocks inside each section. Content is authored in a YAML file and
// validated at load time so that broken nav targets or malformed forms fail
// fast instead of silently rendering wrong.

package page

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultContentFile is the content file name created for new projects.
const DefaultContentFile = "portfolio.yaml"

// NavLink maps a nav label to a section id.
type NavLink struct {
	Label  string `yaml:"label"`
	Target string `yaml:"target"`
}

// SkillCard is one card in a skills section.
type SkillCard struct {
	Name   string `yaml:"name"`
	Level  string `yaml:"level,omitempty"`
	Detail string `yaml:"detail,omitempty"`
}

// TimelineItem is one entry in an experience timeline.
type TimelineItem struct {
	Period  string `yaml:"period"`
	Role    string `yaml:"role"`
	Summary string `yaml:"summary,omitempty"`
}

// FormField describes one input of the contact form.
type FormField struct {
	Name        string `yaml:"name"`
	Label       string `yaml:"label"`
	Placeholder string `yaml:"placeholder,omitempty"`
	Multiline   bool   `yaml:"multiline,omitempty"`
}

// ContactForm declares the contact form and its destination.
type ContactForm struct {
	// Endpoint overrides the configured form endpoint when set.
	Endpoint string      `yaml:"endpoint,omitempty"`
	Fields   []FormField `yaml:"fields"`
}

// Block is one renderable unit inside a section. Exactly one of the fields
// is set; Kind reports which.
type Block struct {
	Paragraph string        `yaml:"paragraph,omitempty"`
	Skill     *SkillCard    `yaml:"skill,omitempty"`
	Timeline  *TimelineItem `yaml:"timeline,omitempty"`
	Form      *ContactForm  `yaml:"form,omitempty"`
}

// BlockKind identifies a block variant.
type BlockKind int

const (
	KindEmpty BlockKind = iota
	KindParagraph
	KindSkill
	KindTimeline
	KindForm
)

// Kind reports which variant this block holds.
func (b Block) Kind() BlockKind {
	switch {
	case b.Skill != nil:
		return KindSkill
	case b.Timeline != nil:
		return KindTimeline
	case b.Form != nil:
		return KindForm
	case strings.TrimSpace(b.Paragraph) != "":
		return KindParagraph
	default:
		return KindEmpty
	}
}

// Section is a titled, identified region of the page.
type Section struct {
	ID     string  `yaml:"id"`
	Title  string  `yaml:"title"`
	Blocks []Block `yaml:"blocks"`
}

// Page is the whole document.
type Page struct {
	Title    string    `yaml:"title"`
	Tagline  string    `yaml:"tagline,omitempty"`
	Nav      []NavLink `yaml:"nav"`
	Sections []Section `yaml:"sections"`
}

// Load reads and validates a page content file.
func Load(path string) (*Page, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("page: read %s: %w", path, err)
	}
	var p Page
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("page: parse %s: %w", path, err)
	}
	p.normalize()
	if err := p.validate(); err != nil {
		return nil, fmt.Errorf("page: %s: %w", path, err)
	}
	return &p, nil
}

func (p *Page) normalize() {
	p.Title = strings.TrimSpace(p.Title)
	p.Tagline = strings.TrimSpace(p.Tagline)
	for i := range p.Nav {
		p.Nav[i].Label = strings.TrimSpace(p.Nav[i].Label)
		p.Nav[i].Target = strings.TrimSpace(strings.TrimPrefix(p.Nav[i].Target, "#"))
	}
	for i := range p.Sections {
		p.Sections[i].ID = strings.TrimSpace(p.Sections[i].ID)
		p.Sections[i].Title = strings.TrimSpace(p.Sections[i].Title)
	}
}

func (p *Page) validate() error {
	if len(p.Sections) == 0 {
		return errors.New("at least one section is required")
	}
	ids := map[string]struct{}{}
	forms := 0
	for i, sec := range p.Sections {
		if sec.ID == "" {
			return fmt.Errorf("sections[%d]: id is required", i)
		}
		if _, dup := ids[sec.ID]; dup {
			return fmt.Errorf("sections[%d]: duplicate id %q", i, sec.ID)
		}
		ids[sec.ID] = struct{}{}
		for j, blk := range sec.Blocks {
			switch blk.Kind() {
			case KindEmpty:
				return fmt.Errorf("sections[%s].blocks[%d]: empty block", sec.ID, j)
			case KindForm:
				forms++
				if err := blk.Form.validate(); err != nil {
					return fmt.Errorf("sections[%s].blocks[%d]: %w", sec.ID, j, err)
				}
			}
		}
	}
	if forms > 1 {
		return errors.New("at most one contact form is allowed")
	}
	for i, link := range p.Nav {
		if link.Label == "" {
			return fmt.Errorf("nav[%d]: label is required", i)
		}
		if _, ok := ids[link.Target]; !ok {
			return fmt.Errorf("nav[%d]: link %q points at unknown section %q", i, link.Label, link.Target)
		}
	}
	return nil
}

func (f *ContactForm) validate() error {
	if len(f.Fields) == 0 {
		return errors.New("form declares no fields")
	}
	names := map[string]struct{}{}
	for i, field := range f.Fields {
		name := strings.TrimSpace(field.Name)
		if name == "" {
			return fmt.Errorf("form field %d: name is required", i)
		}
		if _, dup := names[name]; dup {
			return fmt.Errorf("form field %d: duplicate name %q", i, name)
		}
		names[name] = struct{}{}
	}
	return nil
}

// Section returns the section with the given id, if present.
func (p *Page) Section(id string) (Section, bool) {
	for _, sec := range p.Sections {
		if sec.ID == id {
			return sec, true
		}
	}
	return Section{}, false
}

// ContactForm returns the page's contact form and its section id, or ok=false
// when the page declares none. A page without a form keeps the submitter
// component entirely inert.
func (p *Page) ContactForm() (*ContactForm, string, bool) {
	for _, sec := range p.Sections {
		for _, blk := range sec.Blocks {
			if blk.Form != nil {
				return blk.Form, sec.ID, true
			}
		}
	}
	return nil, "", false
}

// LinkTarget reports whether any nav link points at the given section id.
func (p *Page) LinkTarget(id string) bool {
	for _, link := range p.Nav {
		if link.Target == id {
			return true
		}
	}
	return false
}

const defaultContentYAML = `# atrium page content
title: Ada Example
tagline: Systems engineer who also does the front of the house

nav:
  - label: About
    target: about
  - label: Skills
    target: skills
  - label: Experience
    target: experience
  - label: Contact
    target: contact

sections:
  - id: about
    title: About
    blocks:
      - paragraph: >
          I build small, reliable tools and the occasional web thing.
          This page is rendered by atrium from portfolio.yaml; edit the
          file and the page reloads in place.

  - id: skills
    title: Skills
    blocks:
      - skill:
          name: Go
          level: daily driver
          detail: services, CLIs, terminal UIs
      - skill:
          name: Distributed systems
          level: comfortable
          detail: queues, retries, backpressure
      - skill:
          name: SQL
          level: comfortable
          detail: schema design and the slow-query hunt

  - id: experience
    title: Experience
    blocks:
      - timeline:
          period: 2023 - now
          role: Senior engineer, Example Corp
          summary: Owns the ingestion pipeline and its on-call rotation.
      - timeline:
          period: 2020 - 2023
          role: Engineer, Startup Co
          summary: Everything from the billing cron to the status page.

  - id: contact
    title: Contact
    blocks:
      - paragraph: Want to talk? Send a message below.
      - form:
          fields:
            - name: name
              label: Name
              placeholder: Your name
            - name: email
              label: Email
              placeholder: you@example.com
            - name: message
              label: Message
              placeholder: What's on your mind?
              multiline: true
`

// EnsureContent writes the sample content file if none exists yet.
func EnsureContent(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.WriteFile(path, []byte(defaultContentYAML), 0644)
}
