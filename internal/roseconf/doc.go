// Package roseconf reads, links, edits and writes STASH request files in
// the Rose app configuration dialect:
//
//	meta=um-atmos/vn10.5
//
//	[namelist:domain(DALLTH)]
//	dom_name='DALLTH'
//	!!levb=1
//
//	[namelist:streq(00003_8b7e3f41)]
//	dom_name='DALLTH'
//	isec=3
//	item=236
//	...
//
// A Model is the single authority over both the raw section store and the
// indices derived from it. Every structural change goes through Model
// methods so the two never diverge. A Model is not safe for concurrent
// mutation.
package roseconf
