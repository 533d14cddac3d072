// Package collection provides an observable, index-addressed list.
//
// An ObservableList applies every mutation first and then reports it to its
// subscribers as a single Change value. The change shapes form a closed set:
//
//	Added     one or more contiguous items inserted at Index
//	Removed   one or more contiguous items removed from Index
//	Moved     a single item moved from OldIndex to NewIndex
//	Replaced  a single item substituted at Index
//	Reset     the list was cleared wholesale
//
// Subscribers that need to replay or invert a change work through the untyped
// Observable primitives (InsertValue, RemoveValueAt, SetValue, ValueAt), so a
// consumer such as the undo history does not need to know the element type.
//
// Items stored in a list may implement Item to be told when they are added to,
// removed from, or moved within a tracked list.
package collection
