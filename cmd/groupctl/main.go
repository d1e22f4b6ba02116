// Command groupctl manages groups, which the API only exposes read-only.
//
//	groupctl -title "Cats" -slug cats -description "All about cats"
//	groupctl -list
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/emilythestrangee/yatube/backend/internal/config"
	"github.com/emilythestrangee/yatube/backend/internal/database"
	"github.com/emilythestrangee/yatube/backend/internal/logger"
	"github.com/emilythestrangee/yatube/backend/internal/models"
	"github.com/emilythestrangee/yatube/backend/internal/repository"
)

func main() {
	title := flag.String("title", "", "group title")
	slug := flag.String("slug", "", "unique group slug")
	description := flag.String("description", "", "group description")
	list := flag.Bool("list", false, "list existing groups instead of creating one")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "groupctl:", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel, "text")

	db, err := database.New(cfg.DB, log)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize database")
	}
	defer db.Close()

	groups := repository.New(db.GetDB()).Groups
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if *list {
		err = listGroups(ctx, groups)
	} else {
		err = createGroup(ctx, groups, models.Group{
			Title:       strings.TrimSpace(*title),
			Slug:        strings.TrimSpace(*slug),
			Description: *description,
		})
	}
	if err != nil {
		log.WithError(err).Error("groupctl failed")
		db.Close()
		os.Exit(1)
	}
}

func createGroup(ctx context.Context, groups repository.GroupRepository, g models.Group) error {
	if g.Title == "" || g.Slug == "" {
		return errors.New("-title and -slug are required")
	}

	if err := groups.Create(ctx, &g); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return fmt.Errorf("slug %q is already taken", g.Slug)
		}
		return fmt.Errorf("create group: %w", err)
	}

	fmt.Printf("created group %d (%s)\n", g.ID, g.Slug)
	return nil
}

func listGroups(ctx context.Context, groups repository.GroupRepository) error {
	items, _, err := groups.List(ctx, repository.Page{})
	if err != nil {
		return fmt.Errorf("list groups: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSLUG\tTITLE")
	for _, g := range items {
		fmt.Fprintf(w, "%d\t%s\t%s\n", g.ID, g.Slug, g.Title)
	}
	return w.Flush()
}
