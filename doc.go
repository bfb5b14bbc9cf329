// Package finmgr turns brokerage statements into a canonical stream of
// investment transactions and folds that stream into per-account accounting
// metrics.
//
// The core functionalities include:
//   - Canonical Model: an immutable Transaction record with exact decimal
//     quantities and monetary amounts, where optional amounts keep the
//     difference between "not reported" and "exactly zero".
//   - Portfolio: an immutable mapping from account type to Holding, updated
//     copy-on-write by transaction operations.
//   - Operations: Average Cost Basis, a transaction operation, and Net Present
//     Value, a daily operation backed by an injected PriceLookup.
//   - Run Engine: Process folds transactions into a final Portfolio, and Daily
//     re-evaluates daily operations on every day of a date range.
//
// Statement parsing lives in the parse package and the vendor packages
// (questrade, rbc); market data in market and eodhd; the `fm` command line
// tool wires everything together through the cmd package.
package finmgr
