// SPDX-License-Identifier: EPL-2.0

// Package clip holds the editor's clipboard slot and its library of named
// clips. Both keep their audio in the lossless raw format so that the
// stored data never aliases a live buffer.
package clip
