// Package warmup pre-computes the embeddings of a corpus so that later
// sessions over a cached embedder start without calling the embedding service.
//
// Texts are embedded in batches on a bounded worker pool. Each batch is
// retried with exponential backoff and progress is written to an io.Writer.
package warmup
