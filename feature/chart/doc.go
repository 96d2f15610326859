// Package chart implements the song conversion pipeline.
//
// The pipeline turns the raw otoge-db song feed into the normalized
// per-difficulty chart catalog consumed by downstream bots and sites.
// A run has three stages:
//
//  1. Normalize: each raw record becomes up to three chart entries
//     (standard, deluxe, special-event), with difficulty ratings,
//     level labels and note-count sub-charts index-aligned per tier.
//  2. Reconcile: four ordered passes merge the cached catalog, the
//     community difficulty dataset and a small table of pinned
//     identities into the fresh entries, so manual corrections
//     survive re-runs (see feature/chart/reconcile).
//  3. Publish: the catalog is written as JSON; international runs
//     additionally fold the result onto the cached master catalog to
//     produce the filtered international document.
//
// The domestic and international services differ only by the Profile
// constants in feature/chart/models; the transform code is shared.
package chart
