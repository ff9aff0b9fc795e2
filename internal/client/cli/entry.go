package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/stockbook-app/stockbook/internal/client/models"
)

// SwitchDomain prompts for a domain name and makes it the active catalog.
func (a *App) SwitchDomain(ctx context.Context) error {
	text, err := getSimpleText(a.reader, "Enter domain (shoes or foods)", os.Stdout)
	if err != nil {
		return err
	}
	domain, err := models.ParseDomain(text)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	a.domain = domain
	return nil
}

// List prints the catalog entries of the active domain. Entries that have
// not been reconciled with the backend yet are marked "local".
func (a *App) List(ctx context.Context) error {
	entries, err := a.catalog.List(ctx, a.domain)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	for _, e := range entries {
		marker := "local"
		if e.RemoteID != nil {
			marker = fmt.Sprintf("#%d", *e.RemoteID)
		}
		fmt.Printf("%s  %s / %s  [%s]\n", e.ID, e.Name, e.Size, marker)
	}
	return nil
}

// AddEntry collects entry fields and persists a new catalog entry in the
// active domain. The remote write is queued and applied by the worker.
func (a *App) AddEntry(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter product name", os.Stdout)
	if err != nil {
		return err
	}
	size, err := getSimpleText(a.reader, "Enter size (or option)", os.Stdout)
	if err != nil {
		return err
	}
	memo, err := getSimpleText(a.reader, "Enter memo (optional)", os.Stdout)
	if err != nil {
		return err
	}

	e, err := a.catalog.Add(ctx, a.domain, name, size)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	if memo != "" {
		e.Memo = memo
		if err := a.catalog.Update(ctx, e); err != nil {
			log.Printf("error: %v", err)
			return err
		}
	}

	fmt.Printf("Added %s\n", e.ID)
	return nil
}

// DeleteEntry removes an entry by its identifier, prompting the user for
// the ID. All records of the entry go with it.
func (a *App) DeleteEntry(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter entry id to delete", os.Stdout)
	if err != nil {
		return err
	}
	if err := a.catalog.Delete(ctx, id); err != nil {
		log.Printf("error: %v", err)
		return err
	}
	return nil
}

// SetImage uploads a local image file via a presigned URL and attaches the
// resulting object URL to an entry:
//  1. requests a presigned PUT URL from the backend,
//  2. uploads the raw file content,
//  3. stores the object URL (without the signing query) on the entry.
func (a *App) SetImage(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter entry id", os.Stdout)
	if err != nil {
		return err
	}
	entry, err := a.catalog.Get(ctx, id)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	path, err := getSimpleText(a.reader, "Enter image file path", os.Stdout)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	_, url, err := a.client.PresignImageUpload(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	if err := a.client.UploadImage(ctx, url, data); err != nil {
		log.Printf("error: %v", err)
		return err
	}

	entry.ImageURL = strings.SplitN(url, "?", 2)[0]
	if err := a.catalog.Update(ctx, entry); err != nil {
		log.Printf("error: %v", err)
		return err
	}

	fmt.Println("Image attached")
	return nil
}
