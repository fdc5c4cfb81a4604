package engine

// Guest export names.
const (
	ExportMemory     = "memory"
	ExportAllocate   = "allocate"
	ExportInvoke     = "invoke"
	ExportDeallocate = "deallocate"

	// accepted in place of allocate/deallocate
	altAlloc = "cabi_realloc"
	altFree  = "cabi_free"
)

// Pack combines a guest pointer and length into the i64 returned by invoke.
func Pack(ptr, length uint32) uint64 {
	return uint64(ptr)<<32 | uint64(length)
}

// Unpack splits an invoke result into pointer and length.
func Unpack(v uint64) (ptr, length uint32) {
	return uint32(v >> 32), uint32(v)
}
