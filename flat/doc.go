// Package flat contains the FlatBuffers tables of the CityBuf format as
// described by citybuf.fbs. Column types reuse the FlatGeobuf ColumnType
// enumeration.
package flat
