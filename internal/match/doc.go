// Package match defines the shared match data model: parsed intents from
// operator text and the optimized records the studio backend returns.
package match
