// Package models defines the core domain models for the shared ledger.
//
// # Models
//
//   - User: a registered account with optional budgeting settings
//   - Group: a set of members (and pending invitees) sharing a ledger
//   - Transaction: an immutable ledger entry (expense, income or transfer)
//
// # Transaction details
//
// Each transaction carries a Details value whose concrete type is selected by
// the transaction type. Details is a sealed interface: only ExpenseDetails,
// IncomeDetails and TransferDetails implement it, so a type switch over a
// transaction's details covers every case that can exist.
//
// # Design Principles
//
// 1. **IDs, not pointers**: relationships are expressed with ID strings
// 2. **Exact money**: amounts and splitting fractions use decimal.Decimal
// 3. **Immutability**: transactions are appended once and never updated
package models
