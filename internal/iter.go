// Package internal holds iterator helpers shared by the linker packages.
package internal

import (
	"iter"
)

// IterSeqConcat chains sequences, yielding each in turn.
func IterSeqConcat[T any](seqs ...iter.Seq[T]) iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, seq := range seqs {
			for val := range seq {
				if !yield(val) {
					return
				}
			}
		}
	}
}

// IterSeq2Concat chains pair sequences, yielding each in turn. A key seen in
// a later sequence is yielded again, so collecting into a map lets later
// sequences override earlier ones.
func IterSeq2Concat[K any, V any](seqs ...iter.Seq2[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, seq := range seqs {
			for key, val := range seq {
				if !yield(key, val) {
					return
				}
			}
		}
	}
}
