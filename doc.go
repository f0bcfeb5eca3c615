/*

MIT License

Copyright (c) 2022 wangqi

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.

*/

// Package vtio implements a streaming, zero-copy push parser for terminal
// input: keyboard, mouse, focus, bracketed paste and OSC/DCS query
// responses, mixing legacy VT/ANSI sequences, the Kitty keyboard protocol,
// and XTerm mouse reporting, all interleaved with plain UTF-8 text.
//
// Internally the work is split into a low-level tokenizer that turns an
// arbitrary byte stream into raw escape-sequence frames, and a semantic
// decoder that turns frames into Event values using a registry of
// descriptors indexed by a byte trie. Callers drive both through Parser;
// see NewParser, Parser.FeedWith and Parser.Idle.
package vtio
