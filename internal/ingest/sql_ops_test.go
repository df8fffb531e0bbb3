package ingest_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gyeh/bcbpscan/internal/bcbp"
	"github.com/gyeh/bcbpscan/internal/db"
	"github.com/gyeh/bcbpscan/internal/ingest"
	"github.com/gyeh/bcbpscan/internal/model"
	"github.com/gyeh/bcbpscan/internal/normalize"
)

// ---------- helpers ----------

// stagePayloads COPYs the given payloads into staging for one batch,
// numbering lines from 1.
func stagePayloads(t *testing.T, pool *pgxpool.Pool, pf *ingest.PreflightResult, raws ...string) {
	t.Helper()
	ch := make(chan *model.StagingRow, 64)
	go func() {
		defer close(ch)
		for i, raw := range raws {
			p, err := bcbp.Parse(raw)
			if err != nil {
				t.Errorf("parse line %d: %v", i+1, err)
				return
			}
			pr, segs, err := normalize.ToRows(p, raw, normalize.Source{
				BatchID:    pf.IngestBatchID,
				ScanFileID: pf.ScanFileID,
				Line:       int64(i + 1),
			})
			if err != nil {
				t.Errorf("rows line %d: %v", i+1, err)
				return
			}
			for _, row := range normalize.ToStagingRows(pr, segs) {
				ch <- row
			}
		}
	}()
	_, err := pool.CopyFrom(context.Background(),
		pgx.Identifier{"ingest", "stage_scans"},
		model.StagingColumns(),
		db.NewChannelSource(ch),
	)
	if err != nil {
		t.Fatalf("stage payloads: %v", err)
	}
}

func preflight(t *testing.T, pool *pgxpool.Pool, lines ...string) *ingest.PreflightResult {
	t.Helper()
	pf, err := ingest.Preflight(context.Background(), pool, setupLog(), writeScanFile(t, lines...), false)
	if err != nil {
		t.Fatalf("preflight: %v", err)
	}
	return pf
}

// ---------- Migration tests ----------

func TestMigrations_Idempotent(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()

	// Apply again; everything uses IF NOT EXISTS
	if err := db.ApplyMigrations(ctx, pool, setupLog()); err != nil {
		t.Fatalf("second migration run should be idempotent: %v", err)
	}

	for _, tbl := range []string{
		"ingest.scan_files", "ingest.stage_scans",
		"ref.airports", "ref.carriers",
		"bcbp.passes", "bcbp.flight_segments",
	} {
		var exists bool
		err := pool.QueryRow(ctx, fmt.Sprintf(
			"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_schema || '.' || table_name = '%s')", tbl)).
			Scan(&exists)
		if err != nil {
			t.Fatalf("check table %s: %v", tbl, err)
		}
		if !exists {
			t.Errorf("table %s should exist after migrations", tbl)
		}
	}
}

// ---------- preflight ----------

func TestPreflight_RegistersOncePerHash(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	path := writeScanFile(t, encodePass(t, "DOE/JANE", [2]string{"JFK", "ORD"}))

	first, err := ingest.Preflight(ctx, pool, setupLog(), path, false)
	if err != nil {
		t.Fatalf("first preflight: %v", err)
	}
	second, err := ingest.Preflight(ctx, pool, setupLog(), path, false)
	if err != nil {
		t.Fatalf("second preflight: %v", err)
	}
	if first.ScanFileID != second.ScanFileID {
		t.Errorf("same content should reuse scan_file_id: %d vs %d", first.ScanFileID, second.ScanFileID)
	}
	if first.IngestBatchID == second.IngestBatchID {
		t.Error("each preflight should start a new batch")
	}
	if second.AlreadyLoaded {
		t.Error("a file that never finished loading should not be skipped")
	}
	if n := countRows(t, pool, "ingest.scan_files"); n != 1 {
		t.Errorf("scan_files: got %d, want 1", n)
	}

	if err := ingest.UpdateStatus(ctx, pool, first.ScanFileID, ingest.StatusLoaded); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	third, err := ingest.Preflight(ctx, pool, setupLog(), path, false)
	if err != nil {
		t.Fatalf("third preflight: %v", err)
	}
	if !third.AlreadyLoaded {
		t.Error("loaded file should be skipped without force")
	}
}

// ---------- stage / transform ----------

func TestTransform_DeduplicatesAcrossFiles(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()
	log := setupLog()

	a := encodePass(t, "DOE/JANE", [2]string{"JFK", "ORD"})
	b := encodePass(t, "DOE/JOHN", [2]string{"JFK", "ORD"}, [2]string{"ORD", "SFO"})

	pf1 := preflight(t, pool, a)
	stagePayloads(t, pool, pf1, a)
	res, err := ingest.Transform(ctx, pool, log, pf1.IngestBatchID)
	if err != nil {
		t.Fatalf("transform 1: %v", err)
	}
	if res.PassesInserted != 1 || res.SegmentsInserted != 1 {
		t.Errorf("transform 1: %+v", res)
	}

	// A second file rescans pass a and adds pass b.
	pf2 := preflight(t, pool, a, b)
	stagePayloads(t, pool, pf2, a, b)
	staged, err := ingest.CountStagedPasses(ctx, pool, pf2.IngestBatchID)
	if err != nil {
		t.Fatalf("CountStagedPasses: %v", err)
	}
	if staged != 2 {
		t.Errorf("staged passes: got %d, want 2", staged)
	}

	res, err = ingest.Transform(ctx, pool, log, pf2.IngestBatchID)
	if err != nil {
		t.Fatalf("transform 2: %v", err)
	}
	if res.PassesInserted != 1 || res.SegmentsInserted != 2 {
		t.Errorf("transform 2 should only add pass b: %+v", res)
	}

	var owner int64
	err = pool.QueryRow(ctx, "SELECT scan_file_id FROM bcbp.passes WHERE payload_hash = $1",
		normalize.PayloadHash(a)).Scan(&owner)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if owner != pf1.ScanFileID {
		t.Errorf("pass a should stay with the first file, got scan_file_id %d", owner)
	}
}

func TestUpsertDimensions(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()

	raw := encodePass(t, "DOE/JANE", [2]string{"JFK", "ORD"})
	pf := preflight(t, pool, raw)
	stagePayloads(t, pool, pf, raw)

	for i := 0; i < 2; i++ {
		if err := ingest.UpsertDimensions(ctx, pool, setupLog(), pf.IngestBatchID); err != nil {
			t.Fatalf("UpsertDimensions run %d: %v", i+1, err)
		}
	}
	if n := countRows(t, pool, "ref.airports"); n != 2 {
		t.Errorf("airports: got %d, want 2", n)
	}
	if n := countRows(t, pool, "ref.carriers"); n != 2 {
		t.Errorf("carriers: got %d, want 2", n)
	}
}

// ---------- cleanup / purge ----------

func TestCleanup_OnlyTouchesBatch(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()

	a := encodePass(t, "DOE/JANE", [2]string{"JFK", "ORD"})
	b := encodePass(t, "ROE/RICH", [2]string{"LAX", "SEA"})
	pf1 := preflight(t, pool, a)
	pf2 := preflight(t, pool, b)
	stagePayloads(t, pool, pf1, a)
	stagePayloads(t, pool, pf2, b)

	if err := ingest.Cleanup(ctx, pool, setupLog(), pf1.IngestBatchID); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if n := countRows(t, pool, "ingest.stage_scans"); n != 1 {
		t.Errorf("staging rows: got %d, want 1", n)
	}

	// Unknown batches are a no-op.
	if err := ingest.Cleanup(ctx, pool, setupLog(), uuid.New()); err != nil {
		t.Fatalf("Cleanup unknown batch: %v", err)
	}
}

func TestForcePreflight_PurgesEarlierLoad(t *testing.T) {
	pool := setupDB(t)
	ctx := context.Background()

	raw := encodePass(t, "DOE/JANE", [2]string{"JFK", "ORD"}, [2]string{"ORD", "SFO"})
	path := writeScanFile(t, raw)
	pf, err := ingest.Preflight(ctx, pool, setupLog(), path, false)
	if err != nil {
		t.Fatalf("preflight: %v", err)
	}
	stagePayloads(t, pool, pf, raw)
	if _, err := ingest.Transform(ctx, pool, setupLog(), pf.IngestBatchID); err != nil {
		t.Fatalf("transform: %v", err)
	}
	if _, err := ingest.Finalize(ctx, pool, setupLog(), pf.ScanFileID); err != nil {
		t.Fatalf("finalize: %v", err)
	}

	forced, err := ingest.Preflight(ctx, pool, setupLog(), path, true)
	if err != nil {
		t.Fatalf("forced preflight: %v", err)
	}
	if forced.AlreadyLoaded || forced.Purged != 1 {
		t.Errorf("forced preflight: %+v", forced)
	}
	if n := countRows(t, pool, "bcbp.flight_segments"); n != 0 {
		t.Errorf("segments should cascade on purge, got %d", n)
	}
}
