package main

import (
	"bufio"
	"context"
	"flag"
	"iter"
	"log/slog"
	"os"

	"github.com/poiesic/recall"
	"github.com/poiesic/recall/core"
	"github.com/poiesic/recall/doctree"
	"github.com/poiesic/recall/ingestion"
)

type seedNote struct {
	title string
	body  string
}

var seedNotes = []seedNote{
	{"Trip planning", "Book flights to the coast and reserve a cabin near the lighthouse for the first week of October."},
	{"Grocery list", "Pick up olive oil, basil, pine nuts, and parmesan for the pesto. Check if the market still carries the good sourdough."},
	{"Reading notes", "The chapter on distributed consensus argues that most coordination problems reduce to agreeing on a log order."},
	{"Garden layout", "Move the tomatoes to the south bed next spring. The peppers never got enough sun behind the fence."},
	{"Meeting follow-up", "Send the revised estimate to the contractor and ask about the permit timeline for the garage extension."},
	{"Recipe idea", "Braise the short ribs in red wine with star anise, then finish with orange zest and a splash of fish sauce."},
	{"Workout plan", "Alternate interval runs with long slow distance. Keep the weekly mileage under thirty until the ankle settles."},
	{"Gift ideas", "A field guide to mushrooms for Sam, wool socks for the hiking trip, and that ceramic pour-over for the office."},
	{"Server maintenance", "Rotate the TLS certificates before the end of the month and schedule the kernel upgrade for a quiet weekend."},
	{"Language practice", "Review the subjunctive conjugations and add twenty new vocabulary cards about cooking and markets."},
	{"Photo project", "Scan the box of negatives from the attic. Start with the rolls labeled summer and the unmarked envelope."},
	{"Budget review", "The subscription costs crept up again. Cancel the two streaming services nobody watched last quarter."},
	{"Hiking log", "The ridge trail took six hours with the detour around the washout. Bring more water next time, the spring was dry."},
	{"Book club", "Next month's pick is the novel about the lighthouse keeper. Host rotates to Priya, bring the lemon cake recipe."},
	{"Home repairs", "The bathroom fan rattles at low speed. Probably the bearing. Order the replacement before it seizes."},
	{"Music practice", "Work through the second movement slowly with the metronome at sixty before attempting tempo."},
	{"Travel journal", "The night train from the border arrived at dawn. Coffee at the station was terrible and perfect."},
	{"Work ideas", "Prototype the import pipeline with a bounded queue first. Measure before adding worker pools."},
	{"Car maintenance", "Tires rotated at 42,000. Brake pads have maybe ten thousand left. Ask about the slow coolant loss."},
	{"Birthday planning", "Reserve the back room at the noodle place for the twelfth. Fourteen people, two vegetarians, one gluten-free."},
}

var seedFileName = flag.String("src", "", "file of seed data, one note body per line")

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
	flag.Parse()
}

// paragraphDoc wraps plain text in a single-paragraph rich document.
func paragraphDoc(text string) (string, error) {
	encoded, err := doctree.Encode(&doctree.Node{
		Type: "doc",
		Content: []doctree.Node{
			{Type: "paragraph", Content: []doctree.Node{{Type: "text", Text: text}}},
		},
	})
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

// notesFromFile returns an iterator over notes built from lines in a file.
func notesFromFile(filename string) (iter.Seq[seedNote], error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	return func(yield func(seedNote) bool) {
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			if !yield(seedNote{body: scanner.Text()}) {
				return
			}
		}
	}, nil
}

// notesFromSlice returns an iterator over the built-in seed notes.
func notesFromSlice(notes []seedNote) iter.Seq[seedNote] {
	return func(yield func(seedNote) bool) {
		for _, note := range notes {
			if !yield(note) {
				return
			}
		}
	}
}

// ingestBatched reads from a source iterator and ingests notes in batches.
func ingestBatched(ctx context.Context, pipeline *ingestion.Pipeline, owner string, source iter.Seq[seedNote], batchSize int) error {
	batch := make([]*core.Note, 0, batchSize)

	for seed := range source {
		content, err := paragraphDoc(seed.body)
		if err != nil {
			return err
		}
		batch = append(batch, &core.Note{Title: seed.title, Content: content})

		if len(batch) == batchSize {
			if _, err := pipeline.Ingest(ctx, owner, batch...); err != nil {
				return err
			}
			batch = batch[:0]
		}
	}

	// Process any remaining notes
	if len(batch) > 0 {
		if _, err := pipeline.Ingest(ctx, owner, batch...); err != nil {
			return err
		}
	}

	return nil
}

func main() {
	db, err := recall.NewDatabase("./notes_db")
	if err != nil {
		panic(err)
	}
	defer db.Close()

	ingester, err := db.NewIngestionPipeline()
	if err != nil {
		panic(err)
	}
	defer ingester.Release()

	ctx := context.Background()

	// Determine source of seed data
	var source iter.Seq[seedNote]
	if seedFileName != nil && *seedFileName != "" {
		source, err = notesFromFile(*seedFileName)
		if err != nil {
			panic(err)
		}
	} else {
		source = notesFromSlice(seedNotes)
	}

	// Ingest in batches of 5
	if err := ingestBatched(ctx, ingester, "seed", source, 5); err != nil {
		panic(err)
	}
}
