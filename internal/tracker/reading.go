package tracker

import (
	"fmt"
	"strings"
)

// maxReadingSessions bounds the session log; older sessions are dropped.
const maxReadingSessions = 100

type BookInput struct {
	Title          string
	Author         string
	Why            string
	TopIdeas       []string
	Rating         int
	Status         BookStatus
	TotalPages     int
	DailyPagesGoal int
	Favorite       bool
}

func (in BookInput) normalize() (BookInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return in, fmt.Errorf("%w: title is required", ErrInvalid)
	}
	switch in.Status {
	case "":
		in.Status = BookReading
	case BookReading, BookCompleted, BookWishlist:
	default:
		return in, fmt.Errorf("%w: book status %q", ErrInvalid, in.Status)
	}
	if in.TotalPages < 0 || in.DailyPagesGoal < 0 {
		return in, fmt.Errorf("%w: page counts must not be negative", ErrInvalid)
	}
	if in.Rating < 0 || in.Rating > 5 {
		return in, fmt.Errorf("%w: rating must be between 0 and 5", ErrInvalid)
	}
	return in, nil
}

type ReadingSessionInput struct {
	BookID          string
	PagesRead       int
	DurationMinutes int
	FocusLevel      int
	Mood            int
	Notes           string
}

func findBook(st *State, id string) int {
	for i := range st.Books {
		if st.Books[i].ID == id {
			return i
		}
	}
	return -1
}

func (t *Tracker) AddBook(in BookInput) (Book, error) {
	in, err := in.normalize()
	if err != nil {
		return Book{}, err
	}
	var created Book
	err = t.mutate(func(st *State) error {
		now := t.clock()
		created = Book{
			ID:             t.newID(),
			Title:          in.Title,
			Author:         in.Author,
			Why:            in.Why,
			TopIdeas:       cloneStrings(in.TopIdeas),
			Rating:         in.Rating,
			Status:         in.Status,
			TotalPages:     in.TotalPages,
			DailyPagesGoal: in.DailyPagesGoal,
			Favorite:       in.Favorite,
			CreatedAt:      now,
			LastUpdated:    now,
		}
		if created.Status == BookCompleted {
			created.CompletedAt = &now
			created.PagesRead = created.TotalPages
		}
		st.Books = append(st.Books, created)
		created.TopIdeas = cloneStrings(created.TopIdeas)
		return nil
	})
	return created, err
}

// UpdateBook replaces the book's fields. Pages read are clamped to the new
// total. Marking the book completed stamps CompletedAt and fills the pages
// when the total is known; any other status clears CompletedAt.
func (t *Tracker) UpdateBook(id string, in BookInput) error {
	in, err := in.normalize()
	if err != nil {
		return err
	}
	return t.mutate(func(st *State) error {
		i := findBook(st, id)
		if i < 0 {
			return notFound("book", id)
		}
		b := &st.Books[i]
		now := t.clock()
		b.Title = in.Title
		b.Author = in.Author
		b.Why = in.Why
		b.TopIdeas = cloneStrings(in.TopIdeas)
		b.Rating = in.Rating
		b.TotalPages = in.TotalPages
		b.DailyPagesGoal = in.DailyPagesGoal
		b.Favorite = in.Favorite
		if in.Status == BookCompleted && b.Status != BookCompleted {
			b.CompletedAt = &now
			if b.TotalPages > 0 {
				b.PagesRead = b.TotalPages
			}
		}
		if in.Status != BookCompleted {
			b.CompletedAt = nil
		}
		b.Status = in.Status
		if b.TotalPages > 0 && b.PagesRead > b.TotalPages {
			b.PagesRead = b.TotalPages
		}
		b.LastUpdated = now
		return nil
	})
}

// DeleteBook removes the book together with its reading sessions.
func (t *Tracker) DeleteBook(id string) error {
	return t.mutate(func(st *State) error {
		i := findBook(st, id)
		if i < 0 {
			return notFound("book", id)
		}
		st.Books = append(st.Books[:i], st.Books[i+1:]...)
		kept := st.ReadingSessions[:0]
		for _, s := range st.ReadingSessions {
			if s.BookID != id {
				kept = append(kept, s)
			}
		}
		st.ReadingSessions = kept
		return nil
	})
}

// AddReadingSession logs pages read for a book. Pages beyond the book's total
// are not counted; reaching the total completes the book. Each page earns a
// point.
func (t *Tracker) AddReadingSession(in ReadingSessionInput) (ReadingSession, error) {
	if in.PagesRead <= 0 {
		return ReadingSession{}, fmt.Errorf("%w: pages read must be positive", ErrInvalid)
	}
	var created ReadingSession
	err := t.mutate(func(st *State) error {
		i := findBook(st, in.BookID)
		if i < 0 {
			return notFound("book", in.BookID)
		}
		b := &st.Books[i]
		pages := in.PagesRead
		if b.TotalPages > 0 && b.PagesRead+pages > b.TotalPages {
			pages = b.TotalPages - b.PagesRead
		}
		if pages <= 0 {
			return fmt.Errorf("%w: book %q is already finished", ErrInvalid, b.Title)
		}

		now := t.clock()
		b.PagesRead += pages
		b.LastUpdated = now
		if b.Status == BookWishlist {
			b.Status = BookReading
		}
		if b.TotalPages > 0 && b.PagesRead >= b.TotalPages && b.Status != BookCompleted {
			b.Status = BookCompleted
			b.CompletedAt = &now
		}

		created = ReadingSession{
			ID:              t.newID(),
			BookID:          b.ID,
			Date:            now,
			PagesRead:       pages,
			DurationMinutes: in.DurationMinutes,
			FocusLevel:      in.FocusLevel,
			Mood:            in.Mood,
			Notes:           in.Notes,
		}
		st.ReadingSessions = append(st.ReadingSessions, created)
		if n := len(st.ReadingSessions); n > maxReadingSessions {
			st.ReadingSessions = append([]ReadingSession(nil), st.ReadingSessions[n-maxReadingSessions:]...)
		}

		t.award(st, int64(pages)*Points.ReadPage)
		if TotalPagesRead(st.Books) >= readerPages {
			t.unlock(st, AchievementReader)
		}
		return nil
	})
	return created, err
}

// TotalPagesRead sums pages read across all books.
func TotalPagesRead(books []Book) int {
	total := 0
	for _, b := range books {
		total += b.PagesRead
	}
	return total
}
