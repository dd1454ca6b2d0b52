package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"

	"github.com/haven-app/haven/internal/constants"
	"github.com/haven-app/haven/internal/models"
	"github.com/haven-app/haven/internal/utils"
)

type JournalCmd struct {
	Add    JournalAddCmd    `cmd:"" help:"Write a new journal entry."`
	List   JournalListCmd   `cmd:"" help:"List journal entries."`
	Show   JournalShowCmd   `cmd:"" help:"Show a journal entry."`
	Delete JournalDeleteCmd `cmd:"" help:"Delete a journal entry."`
}

type JournalAddCmd struct {
	Title   string `arg:"" optional:"" help:"Entry title. Prompts if omitted."`
	Content string `help:"Entry content. Prompts if omitted."`
}

func (c *JournalAddCmd) Run(ctx *Context) error {
	title := strings.TrimSpace(c.Title)
	content := strings.TrimSpace(c.Content)

	if title == "" || content == "" {
		var fields []huh.Field
		if title == "" {
			fields = append(fields, huh.NewInput().Title("Title").Value(&title))
		}
		if content == "" {
			fields = append(fields, huh.NewText().Title("What's on your mind?").Value(&content))
		}
		if err := huh.NewForm(huh.NewGroup(fields...)).Run(); err != nil {
			return fmt.Errorf("journal form error: %w", err)
		}
	}

	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("journal title cannot be empty")
	}

	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return err
	}
	now, err := utils.NowInTimezone(settings.Timezone)
	if err != nil {
		now = time.Now()
	}

	entry := models.JournalEntry{
		ID:      uuid.New().String(),
		Title:   strings.TrimSpace(title),
		Content: strings.TrimSpace(content),
		Date:    now,
	}
	if err := ctx.Store.AddJournalEntry(entry); err != nil {
		return err
	}

	fmt.Printf("Saved journal entry: %s\n", entry.Title)
	return nil
}

type JournalListCmd struct{}

func (c *JournalListCmd) Run(ctx *Context) error {
	entries, err := ctx.Store.GetJournalEntries()
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Println("No journal entries yet.")
		return nil
	}

	for _, e := range entries {
		fmt.Printf("%s  %s  %s\n", e.ID[:8], e.Date.Format(constants.DateFormat), e.Title)
	}
	return nil
}

type JournalShowCmd struct {
	ID string `arg:"" help:"Entry id (or unique prefix) from 'haven journal list'."`
}

func (c *JournalShowCmd) Run(ctx *Context) error {
	entry, err := resolveJournalEntry(ctx, c.ID)
	if err != nil {
		return err
	}

	fmt.Printf("%s (%s)\n\n", entry.Title, entry.Date.Format(constants.DateFormat))
	fmt.Println(entry.Content)
	return nil
}

type JournalDeleteCmd struct {
	ID string `arg:"" help:"Entry id (or unique prefix) to delete."`
}

func (c *JournalDeleteCmd) Run(ctx *Context) error {
	entry, err := resolveJournalEntry(ctx, c.ID)
	if err != nil {
		return err
	}

	if err := ctx.Store.DeleteJournalEntry(entry.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted journal entry: %s\n", entry.Title)
	return nil
}

// resolveJournalEntry accepts a full id or an unambiguous prefix.
func resolveJournalEntry(ctx *Context, id string) (models.JournalEntry, error) {
	entries, err := ctx.Store.GetJournalEntries()
	if err != nil {
		return models.JournalEntry{}, err
	}

	var matches []models.JournalEntry
	for _, e := range entries {
		if e.ID == id {
			return e, nil
		}
		if strings.HasPrefix(e.ID, id) {
			matches = append(matches, e)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.JournalEntry{}, fmt.Errorf("journal entry %q not found", id)
	default:
		return models.JournalEntry{}, fmt.Errorf("journal entry id %q is ambiguous (%d matches)", id, len(matches))
	}
}
