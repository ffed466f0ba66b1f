// Package retry provides a bounded exponential-backoff retry combinator.
package retry
