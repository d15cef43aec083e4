// Command xwfunc hosts the Orchestrator behind an HTTP Cloud Function,
// grounded on src/main.go's generate-grid handler: CORS preflight handling,
// a JSON request/response shape, and funcframework.StartHostPort honoring
// $PORT. BigQuery is repurposed from the teacher's primary word source
// (SPEC_FULL.md §11) into an optional moderation exclusion list checked
// against a generated puzzle's words.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"cloud.google.com/go/bigquery"
	"github.com/GoogleCloudPlatform/functions-framework-go/funcframework"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"

	"github.com/sean-reid/crossword-generator/internal/config"
	"github.com/sean-reid/crossword-generator/internal/decoder"
	"github.com/sean-reid/crossword-generator/internal/engine"
	"github.com/sean-reid/crossword-generator/internal/xwlog"
)

type generateRequest struct {
	Size int `json:"size"`
}

type generateResponse struct {
	Success bool            `json:"success"`
	Puzzle  *decoder.Puzzle `json:"puzzle,omitempty"`
	Error   string          `json:"error,omitempty"`
}

var (
	orchestrator *engine.Orchestrator
	logger       *zap.Logger
	moderation   map[string]bool
)

func init() {
	var err error
	logger, err = xwlog.New()
	if err != nil {
		log.Fatalf("xwlog.New: %v", err)
	}

	orchestrator = engine.New(config.Default(), logger)
	if _, err := orchestrator.Initialize(); err != nil {
		log.Fatalf("orchestrator.Initialize: %v", err)
	}

	if project := os.Getenv("XWGEN_MODERATION_PROJECT"); project != "" {
		list, err := loadModerationList(context.Background(), project)
		if err != nil {
			logger.Warn("moderation list unavailable, continuing without it", zap.Error(err))
		} else {
			moderation = list
			logger.Info("moderation list loaded", zap.Int("count", len(list)))
		}
	}

	funcframework.RegisterHTTPFunction("/generate", generateHandler)
}

// loadModerationList queries a BigQuery table of words flagged unsuitable
// for puzzles. This is the teacher's "all_words" table, repointed from
// "the dictionary" to "a denylist the generator must avoid".
func loadModerationList(ctx context.Context, project string) (map[string]bool, error) {
	client, err := bigquery.NewClient(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("bigquery.NewClient: %w", err)
	}
	defer client.Close()

	query := fmt.Sprintf("SELECT word_key FROM `%s.FirestoreQuery.all_words` WHERE flagged = true", project)
	q := client.Query(query)
	q.Location = "US"

	job, err := q.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.Run: %w", err)
	}
	status, err := job.Wait(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Wait: %w", err)
	}
	if err := status.Err(); err != nil {
		return nil, fmt.Errorf("status.Err: %w", err)
	}
	it, err := job.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("job.Read: %w", err)
	}

	list := make(map[string]bool)
	for {
		var row []bigquery.Value
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("it.Next: %w", err)
		}
		word, ok := row[0].(string)
		if !ok {
			continue
		}
		list[strings.ToUpper(word)] = true
	}
	return list, nil
}

func violatesModeration(puzzle *decoder.Puzzle) string {
	if moderation == nil {
		return ""
	}
	for _, c := range puzzle.AcrossClues {
		if moderation[strings.ToUpper(c.Word)] {
			return c.Word
		}
	}
	for _, c := range puzzle.DownClues {
		if moderation[strings.ToUpper(c.Word)] {
			return c.Word
		}
	}
	return ""
}

func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Content-Type", "application/json")
}

func generateHandler(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w)
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		fmt.Fprintf(w, `{"success": false, "error": "method %s not allowed"}`, r.Method)
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(generateResponse{Error: fmt.Sprintf("invalid JSON: %v", err)})
		return
	}
	if req.Size < 3 {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(generateResponse{Error: "size must be at least 3"})
		return
	}

	const maxAttempts = 3
	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		puzzle, err := orchestrator.GenerateCrossword(r.Context(), req.Size)
		if err != nil {
			lastErr = err
			break
		}
		if bad := violatesModeration(puzzle); bad != "" {
			logger.Warn("regenerating after moderation hit", zap.String("word", bad), zap.Int("attempt", attempt))
			lastErr = fmt.Errorf("%q is on the moderation list", bad)
			continue
		}
		json.NewEncoder(w).Encode(generateResponse{Success: true, Puzzle: puzzle})
		return
	}

	logger.Error("generate failed", zap.Error(lastErr))
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(generateResponse{Error: lastErr.Error()})
}

func main() {
	port := "8080"
	if p := os.Getenv("PORT"); p != "" {
		port = p
	}
	if err := funcframework.StartHostPort("", port); err != nil {
		log.Fatalf("funcframework.StartHostPort: %v", err)
	}
}
