package cli

import (
	"context"
	"fmt"
	"slices"
	"strconv"
)

// Movies prints the catalog, marking the user's favorites. The printed
// numbering is remembered so `fav <n>` can reference a row.
func (a *App) Movies(ctx context.Context) error {
	movies, err := a.catalog.Movies(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Could not load movies:", reason(err))
		return err
	}

	favorites := a.favorites.Displayed()
	a.lastListing = a.lastListing[:0]
	for n, m := range movies {
		a.lastListing = append(a.lastListing, m.ID)
		mark := " "
		if slices.Contains(favorites, m.ID) {
			mark = "*"
		}
		fmt.Fprintf(a.out, "%s %2d. %s - %s (%s)\n", mark, n+1, m.Title, m.Director.Name, m.Genre.Name)
	}
	return nil
}

// ToggleFavorite flips a movie in or out of the favorites list. The
// argument is either a row number from the last listing or a movie id.
// The displayed list updates immediately; the printed result reflects
// the reconciled state (or the optimistic one while a write is still in
// flight carrying this change).
func (a *App) ToggleFavorite(ctx context.Context, arg string) error {
	movieID := arg
	if n, err := strconv.Atoi(arg); err == nil {
		if n < 1 || n > len(a.lastListing) {
			fmt.Fprintf(a.out, "No movie %d in the last listing; run 'movies' first\n", n)
			return nil
		}
		movieID = a.lastListing[n-1]
	}

	displayed, err := a.favorites.Toggle(ctx, movieID)
	if err != nil {
		fmt.Fprintln(a.out, "Favorites unchanged:", reason(err))
		return err
	}

	if slices.Contains(displayed, movieID) {
		fmt.Fprintf(a.out, "Added %s to favorites (%d total)\n", movieID, len(displayed))
	} else {
		fmt.Fprintf(a.out, "Removed %s from favorites (%d total)\n", movieID, len(displayed))
	}
	return nil
}
