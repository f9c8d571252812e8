// Package constant holds the shared identifiers of the accounting engine:
// default account prefixes of the French chart of accounts, default journal
// codes, entry types and the anomaly taxonomy.
package constant
