package cli

import (
	"fmt"
	"strings"

	"github.com/haven-app/haven/internal/habits"
	"github.com/haven-app/haven/internal/models"
)

type HabitCmd struct {
	Add      HabitAddCmd      `cmd:"" help:"Add a new habit."`
	List     HabitListCmd     `cmd:"" help:"List habits with today's status."`
	Toggle   HabitToggleCmd   `cmd:"" help:"Toggle a habit's completion for a day."`
	Remove   HabitRemoveCmd   `cmd:"" help:"Permanently remove a habit and its history."`
	Progress HabitProgressCmd `cmd:"" help:"Show weekly completion rates."`
}

type HabitAddCmd struct {
	Name string `arg:"" help:"Habit name."`
}

func (c *HabitAddCmd) Run(ctx *Context) error {
	grid := habits.NewGrid(ctx.Store)
	habit, err := grid.Add(c.Name)
	if err != nil {
		return err
	}
	fmt.Printf("Added habit: %s\n", habit.Name)
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *Context) error {
	grid := habits.NewGrid(ctx.Store)
	all, err := grid.All()
	if err != nil {
		return err
	}

	if len(all) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	week := grid.WeekDateKeys()
	today := week[len(week)-1]
	for _, habit := range all {
		status := "[ ]"
		if habit.DaysCompleted[today] {
			status = "[x]"
		}
		fmt.Printf("%s %s\n", status, habit.Name)
	}
	return nil
}

type HabitToggleCmd struct {
	Name string `arg:"" help:"Habit name."`
	Date string `help:"Date in YYYY-MM-DD format (default: today)." default:""`
}

func (c *HabitToggleCmd) Run(ctx *Context) error {
	grid := habits.NewGrid(ctx.Store)
	habit, err := findHabitByName(grid, c.Name)
	if err != nil {
		return err
	}

	day := c.Date
	if day == "" {
		week := grid.WeekDateKeys()
		day = week[len(week)-1]
	}

	updated, err := grid.ToggleDay(habit.ID, day)
	if err != nil {
		return err
	}

	if updated.DaysCompleted[day] {
		fmt.Printf("Marked habit %q done for %s\n", updated.Name, day)
	} else {
		fmt.Printf("Unmarked habit %q for %s\n", updated.Name, day)
	}
	return nil
}

type HabitRemoveCmd struct {
	Name string `arg:"" help:"Habit name to remove."`
}

func (c *HabitRemoveCmd) Run(ctx *Context) error {
	grid := habits.NewGrid(ctx.Store)
	habit, err := findHabitByName(grid, c.Name)
	if err != nil {
		return err
	}

	if err := grid.Remove(habit.ID); err != nil {
		return err
	}
	fmt.Printf("Removed habit: %s\n", habit.Name)
	fmt.Println("(This permanently deleted its completion history)")
	return nil
}

type HabitProgressCmd struct{}

func (c *HabitProgressCmd) Run(ctx *Context) error {
	grid := habits.NewGrid(ctx.Store)
	all, err := grid.All()
	if err != nil {
		return err
	}

	if len(all) == 0 {
		fmt.Println("No habits found.")
		return nil
	}

	week := grid.WeekDateKeys()

	fmt.Printf("This week (%s to %s):\n\n", week[0], week[len(week)-1])
	for _, habit := range all {
		rate := habits.WeeklyCompletionRate(habit, week)
		fmt.Printf("  %-24s %3d%%  %s\n", truncateName(habit.Name, 24), rate, weekMarkers(habit, week))
	}
	return nil
}

func weekMarkers(habit models.Habit, week []string) string {
	var b strings.Builder
	for _, day := range week {
		if habit.DaysCompleted[day] {
			b.WriteString("x")
		} else {
			b.WriteString(".")
		}
	}
	return b.String()
}

func truncateName(name string, max int) string {
	if len(name) <= max {
		return name
	}
	if max > 3 {
		return name[:max-3] + "..."
	}
	return name[:max]
}

func findHabitByName(grid *habits.Grid, name string) (models.Habit, error) {
	all, err := grid.All()
	if err != nil {
		return models.Habit{}, err
	}
	for _, h := range all {
		if h.Name == name {
			return h, nil
		}
	}
	return models.Habit{}, fmt.Errorf("habit %q not found", name)
}
