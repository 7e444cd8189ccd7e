// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package prompt

import (
	"context"
	"time"
)

// Repository defines the persistence contract for prompts and their tag links.
type Repository interface {
	/*
		List returns every prompt matching filter, most recently updated first.

		Parameters:
		  - context: context.Context
		  - filter: Filter (zero value matches all)

		Returns:
		  - []*Prompt: Hydrated prompts with category and tags
		  - error: Database execution errors
	*/
	List(context context.Context, filter Filter) ([]*Prompt, error)

	// FindByID returns one hydrated prompt or NOT_FOUND.
	FindByID(context context.Context, id string) (*Prompt, error)

	// Count returns the number of stored prompts.
	Count(context context.Context) (int, error)

	/*
		Create inserts the prompt row and links prompt.TagIDs in one transaction.

		Returns:
		  - error: CONFLICT/VALIDATION on constraint failures
	*/
	Create(context context.Context, prompt *Prompt) error

	/*
		Update applies patch and, when patch.TagIDs is set, replaces the tag
		links. Both happen in one transaction.

		Returns:
		  - *Prompt: The re-read prompt
		  - error: NOT_FOUND when id does not exist
	*/
	Update(context context.Context, id string, patch Patch, at time.Time) (*Prompt, error)

	// Delete removes the prompt; its tag links cascade.
	Delete(context context.Context, id string) error

	/*
		IncrementUsage atomically adds one to usageCount and stamps lastUsedAt.
		updatedAt is left untouched.

		Returns:
		  - *Prompt: The re-read prompt
		  - error: NOT_FOUND when id does not exist
	*/
	IncrementUsage(context context.Context, id string, at time.Time) (*Prompt, error)
}
