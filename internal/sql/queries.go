package sql

import "embed"

// Migrations holds the schema DDL, applied in filename order.
//
//go:embed migrations/*.sql
var Migrations embed.FS

//go:embed queries/register_scan_file.sql
var RegisterScanFile string

//go:embed queries/lookup_scan_file.sql
var LookupScanFile string

//go:embed queries/update_scan_status.sql
var UpdateScanStatus string

//go:embed queries/purge_scan_file.sql
var PurgeScanFile string

//go:embed queries/delete_staging_batch.sql
var DeleteStagingBatch string

//go:embed queries/count_staged_passes.sql
var CountStagedPasses string

//go:embed queries/upsert_airports.sql
var UpsertAirports string

//go:embed queries/upsert_carriers.sql
var UpsertCarriers string

//go:embed queries/insert_passes.sql
var InsertPasses string

//go:embed queries/insert_segments.sql
var InsertSegments string
