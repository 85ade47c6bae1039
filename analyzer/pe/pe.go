package pe

import (
	"bytes"
	"debug/pe"
	"encoding/binary"
	"os"

	"cxd/common/colorrange"
	C "cxd/common/constant"

	"github.com/charmbracelet/log"
)

const (
	maxImportDescriptors = 4096
	maxThunks            = 1 << 16
	maxExports           = 1 << 16
	maxNameLength        = 4096
)

// field is a header member: its name and its size in a PE32 and a PE32+ image.
// A zero size means the field does not exist in that layout.
type field struct {
	name   string
	size32 int
	size64 int
}

var dosHeader = []field{
	{"e_magic", 2, 2}, {"e_cblp", 2, 2}, {"e_cp", 2, 2}, {"e_crlc", 2, 2},
	{"e_cparhdr", 2, 2}, {"e_minalloc", 2, 2}, {"e_maxalloc", 2, 2}, {"e_ss", 2, 2},
	{"e_sp", 2, 2}, {"e_csum", 2, 2}, {"e_ip", 2, 2}, {"e_cs", 2, 2},
	{"e_lfarlc", 2, 2}, {"e_ovno", 2, 2}, {"e_res", 8, 8}, {"e_oemid", 2, 2},
	{"e_oeminfo", 2, 2}, {"e_res2", 20, 20}, {"e_lfanew", 4, 4},
}

var fileHeader = []field{
	{"Machine", 2, 2}, {"NumberOfSections", 2, 2}, {"TimeDateStamp", 4, 4},
	{"PointerToSymbolTable", 4, 4}, {"NumberOfSymbols", 4, 4},
	{"SizeOfOptionalHeader", 2, 2}, {"Characteristics", 2, 2},
}

var optionalHeader = []field{
	{"Magic", 2, 2}, {"MajorLinkerVersion", 1, 1}, {"MinorLinkerVersion", 1, 1},
	{"SizeOfCode", 4, 4}, {"SizeOfInitializedData", 4, 4}, {"SizeOfUninitializedData", 4, 4},
	{"AddressOfEntryPoint", 4, 4}, {"BaseOfCode", 4, 4}, {"BaseOfData", 4, 0},
	{"ImageBase", 4, 8}, {"SectionAlignment", 4, 4}, {"FileAlignment", 4, 4},
	{"MajorOperatingSystemVersion", 2, 2}, {"MinorOperatingSystemVersion", 2, 2},
	{"MajorImageVersion", 2, 2}, {"MinorImageVersion", 2, 2},
	{"MajorSubsystemVersion", 2, 2}, {"MinorSubsystemVersion", 2, 2},
	{"Reserved1", 4, 4}, {"SizeOfImage", 4, 4}, {"SizeOfHeaders", 4, 4},
	{"CheckSum", 4, 4}, {"Subsystem", 2, 2}, {"DllCharacteristics", 2, 2},
	{"SizeOfStackReserve", 4, 8}, {"SizeOfStackCommit", 4, 8},
	{"SizeOfHeapReserve", 4, 8}, {"SizeOfHeapCommit", 4, 8},
	{"LoaderFlags", 4, 4}, {"NumberOfRvaAndSizes", 4, 4},
}

// Analyzer colors the headers, imported names and exported names of a
// Windows PE image.
type Analyzer struct {
	path   string
	cycle  *colorrange.Cycle
	data   []byte
	file   *pe.File
	check  *bool
	ranges []colorrange.Range
}

func New(path string, colors []C.Color) *Analyzer {
	return &Analyzer{path: path, cycle: colorrange.NewCycle(colors)}
}

func (a *Analyzer) Check() bool {
	if a.check != nil {
		return *a.check
	}
	ok := a.load()
	a.check = &ok
	return ok
}

func (a *Analyzer) load() bool {
	data, err := os.ReadFile(a.path)
	if err != nil {
		log.Errorf("Cannot read %s: %v", a.path, err)
		return false
	}
	if !bytes.HasPrefix(data, []byte("MZ")) {
		log.Errorf("Cannot read %s as PE: no MZ header", a.path)
		return false
	}
	file, err := pe.NewFile(bytes.NewReader(data))
	if err != nil {
		log.Errorf("Cannot read %s as PE: %v", a.path, err)
		return false
	}
	a.data, a.file = data, file
	log.Infof("Can read %s", a.path)
	return true
}

func (a *Analyzer) Parse() []colorrange.Range {
	if a.ranges != nil {
		return a.ranges
	}
	a.ranges = []colorrange.Range{}
	if !a.Check() {
		return a.ranges
	}

	lfanew := int64(binary.LittleEndian.Uint32(a.data[0x3c:]))
	a.addFields("DOS_HEADER", 0, dosHeader, false, int64(len(a.data)))
	a.add(lfanew, 4, "NT_HEADERS.Signature")
	a.addFields("FILE_HEADER", lfanew+4, fileHeader, false, int64(len(a.data)))

	pe64 := false
	var dirs []pe.DataDirectory
	switch oh := a.file.OptionalHeader.(type) {
	case *pe.OptionalHeader32:
		dirs = oh.DataDirectory[:min(int(oh.NumberOfRvaAndSizes), len(oh.DataDirectory))]
	case *pe.OptionalHeader64:
		pe64 = true
		dirs = oh.DataDirectory[:min(int(oh.NumberOfRvaAndSizes), len(oh.DataDirectory))]
	}
	ohStart := lfanew + 24
	if a.file.OptionalHeader != nil {
		a.addFields("OPTIONAL_HEADER", ohStart, optionalHeader, pe64, ohStart+int64(a.file.SizeOfOptionalHeader))
	}

	if len(dirs) > pe.IMAGE_DIRECTORY_ENTRY_IMPORT {
		a.parseImports(dirs[pe.IMAGE_DIRECTORY_ENTRY_IMPORT], pe64)
	}
	if len(dirs) > pe.IMAGE_DIRECTORY_ENTRY_EXPORT {
		a.parseExports(dirs[pe.IMAGE_DIRECTORY_ENTRY_EXPORT])
	}
	log.Infof("Found %d ranges in %s", len(a.ranges), a.path)
	return a.ranges
}

func (a *Analyzer) add(start, length int64, comment string) {
	if start < 0 || length <= 0 || start+length > int64(len(a.data)) {
		log.Debug("Range outside of file", "comment", comment, "start", start, "length", length)
		return
	}
	a.ranges = append(a.ranges, colorrange.Range{Start: start, Length: length, Color: a.cycle.Next(), Comment: comment})
}

func (a *Analyzer) addFields(prefix string, start int64, fields []field, pe64 bool, limit int64) {
	offset := start
	for _, f := range fields {
		size := f.size32
		if pe64 {
			size = f.size64
		}
		if size == 0 {
			continue
		}
		if offset+int64(size) > limit {
			return
		}
		a.add(offset, int64(size), prefix+"."+f.name)
		offset += int64(size)
	}
}

// offsetOf maps a relative virtual address to a file offset through the section table.
func (a *Analyzer) offsetOf(rva uint32) (int64, bool) {
	for _, s := range a.file.Sections {
		size := max(s.VirtualSize, s.Size)
		if rva >= s.VirtualAddress && rva-s.VirtualAddress < size {
			off := int64(rva-s.VirtualAddress) + int64(s.Offset)
			if off < int64(len(a.data)) {
				return off, true
			}
		}
	}
	return 0, false
}

func (a *Analyzer) u16(off int64) (uint16, bool) {
	if off < 0 || off+2 > int64(len(a.data)) {
		return 0, false
	}
	return binary.LittleEndian.Uint16(a.data[off:]), true
}

func (a *Analyzer) u32(off int64) (uint32, bool) {
	if off < 0 || off+4 > int64(len(a.data)) {
		return 0, false
	}
	return binary.LittleEndian.Uint32(a.data[off:]), true
}

func (a *Analyzer) u64(off int64) (uint64, bool) {
	if off < 0 || off+8 > int64(len(a.data)) {
		return 0, false
	}
	return binary.LittleEndian.Uint64(a.data[off:]), true
}

// cstring returns the NUL terminated string at off.
func (a *Analyzer) cstring(off int64) (string, bool) {
	if off < 0 || off >= int64(len(a.data)) {
		return "", false
	}
	end := min(int64(len(a.data)), off+maxNameLength)
	n := bytes.IndexByte(a.data[off:end], 0)
	if n <= 0 {
		return "", false
	}
	return string(a.data[off : off+int64(n)]), true
}

func (a *Analyzer) addString(rva uint32, skip int64, label string) {
	off, ok := a.offsetOf(rva)
	if !ok {
		log.Errorf("%s: RVA %#x is outside every section", label, rva)
		return
	}
	off += skip
	name, ok := a.cstring(off)
	if !ok {
		log.Errorf("%s: no name at offset %#x", label, off)
		return
	}
	a.add(off, int64(len(name)), name)
}

func (a *Analyzer) parseImports(dir pe.DataDirectory, pe64 bool) {
	if dir.VirtualAddress == 0 {
		return
	}
	log.Debug("## imports")
	base, ok := a.offsetOf(dir.VirtualAddress)
	if !ok {
		return
	}
	thunkSize := int64(4)
	if pe64 {
		thunkSize = 8
	}
	for i := int64(0); i < maxImportDescriptors; i++ {
		desc := base + 20*i
		originalFirstThunk, ok1 := a.u32(desc)
		nameRVA, ok2 := a.u32(desc + 12)
		firstThunk, ok3 := a.u32(desc + 16)
		if !ok1 || !ok2 || !ok3 || (nameRVA == 0 && firstThunk == 0) {
			return
		}
		a.addString(nameRVA, 0, "import dll")

		thunks := originalFirstThunk
		if thunks == 0 {
			thunks = firstThunk
		}
		thunkOff, ok := a.offsetOf(thunks)
		if !ok {
			continue
		}
		for j := int64(0); j < maxThunks; j++ {
			var entry uint64
			var byOrdinal bool
			if pe64 {
				v, ok := a.u64(thunkOff + j*thunkSize)
				if !ok {
					break
				}
				entry, byOrdinal = v, v&(1<<63) != 0
			} else {
				v, ok := a.u32(thunkOff + j*thunkSize)
				if !ok {
					break
				}
				entry, byOrdinal = uint64(v), v&(1<<31) != 0
			}
			if entry == 0 {
				break
			}
			if byOrdinal {
				continue
			}
			// hint/name entry: a 2 byte hint then the name
			a.addString(uint32(entry&0x7fffffff), 2, "import name")
		}
	}
}

func (a *Analyzer) parseExports(dir pe.DataDirectory) {
	if dir.VirtualAddress == 0 {
		return
	}
	log.Debug("## exports")
	base, ok := a.offsetOf(dir.VirtualAddress)
	if !ok {
		return
	}
	numberOfFunctions, ok1 := a.u32(base + 20)
	numberOfNames, ok2 := a.u32(base + 24)
	addressOfFunctions, ok3 := a.u32(base + 28)
	addressOfNames, ok4 := a.u32(base + 32)
	addressOfNameOrdinals, ok5 := a.u32(base + 36)
	if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 {
		return
	}
	functions, okF := a.offsetOf(addressOfFunctions)
	names, okN := a.offsetOf(addressOfNames)
	ordinals, okO := a.offsetOf(addressOfNameOrdinals)
	if !okN || !okO {
		return
	}
	for i := int64(0); i < int64(min(numberOfNames, maxExports)); i++ {
		nameRVA, ok := a.u32(names + 4*i)
		if !ok {
			return
		}
		a.addString(nameRVA, 0, "export name")

		ordinal, ok := a.u16(ordinals + 2*i)
		if !ok || !okF || uint32(ordinal) >= numberOfFunctions {
			continue
		}
		functionRVA, ok := a.u32(functions + 4*int64(ordinal))
		if !ok {
			continue
		}
		// an address inside the export directory is a forwarder string
		if functionRVA >= dir.VirtualAddress && functionRVA-dir.VirtualAddress < dir.Size {
			a.addString(functionRVA, 0, "export forwarder")
		}
	}
}
