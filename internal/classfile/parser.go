// Package classfile decodes compiled JVM class files into jvm.TypeDescriptor
// values. Only the parts needed for API analysis are kept: access flags,
// the super type, interfaces and method signatures. Fields, attributes and
// code are skipped.
package classfile

import (
	"fmt"
	"io"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/scan-io-git/apiprops/internal/jvm"
)

const magic = 0xCAFEBABE

// constant pool tags
const (
	tagUtf8               = 1
	tagInteger            = 3
	tagFloat              = 4
	tagLong               = 5
	tagDouble             = 6
	tagClass              = 7
	tagString             = 8
	tagFieldref           = 9
	tagMethodref          = 10
	tagInterfaceMethodref = 11
	tagNameAndType        = 12
	tagMethodHandle       = 15
	tagMethodType         = 16
	tagDynamic            = 17
	tagInvokeDynamic      = 18
	tagModule             = 19
	tagPackage            = 20
)

type constant struct {
	tag   uint8
	utf8  string
	index uint16 // name_index of CONSTANT_Class
}

type constantPool []constant

func (cp constantPool) utf8(index uint16) (string, error) {
	if int(index) >= len(cp) || cp[index].tag != tagUtf8 {
		return "", fmt.Errorf("constant pool index %d is not a UTF8 entry", index)
	}
	return cp[index].utf8, nil
}

func (cp constantPool) className(index uint16) (string, error) {
	if int(index) >= len(cp) || cp[index].tag != tagClass {
		return "", fmt.Errorf("constant pool index %d is not a class entry", index)
	}
	return cp.utf8(cp[index].index)
}

// classRef resolves a CONSTANT_Class entry into a TypeRef. Array classes
// are stored as descriptors and keep that form.
func (cp constantPool) classRef(index uint16) (jvm.TypeRef, error) {
	name, err := cp.className(index)
	if err != nil {
		return "", err
	}
	if len(name) > 0 && name[0] == '[' {
		ref, _, err := jvm.ParseFieldDescriptor(name)
		return ref, err
	}
	return jvm.ClassRef(name), nil
}

// Parse decodes one class file. source is recorded on the descriptor and
// used in error messages.
func Parse(r io.Reader, source string) (*jvm.TypeDescriptor, error) {
	br := newBinaryReader(r)
	td, err := parse(br, source)
	if err != nil {
		return nil, fmt.Errorf("%s: offset %d: %w", source, br.bytesRead, err)
	}
	return td, nil
}

func parse(br *binaryReader, source string) (*jvm.TypeDescriptor, error) {
	m, err := br.readU4()
	if err != nil {
		return nil, fmt.Errorf("failed to read magic: %w", err)
	}
	if m != magic {
		return nil, fmt.Errorf("bad magic 0x%08X", m)
	}
	// minor_version, major_version
	if err := br.skip(4); err != nil {
		return nil, fmt.Errorf("failed to read version: %w", err)
	}

	cp, err := readConstantPool(br)
	if err != nil {
		return nil, err
	}

	access, err := br.readU2()
	if err != nil {
		return nil, fmt.Errorf("failed to read access flags: %w", err)
	}
	thisIndex, err := br.readU2()
	if err != nil {
		return nil, fmt.Errorf("failed to read this_class: %w", err)
	}
	name, err := cp.classRef(thisIndex)
	if err != nil {
		return nil, fmt.Errorf("this_class: %w", err)
	}

	td := &jvm.TypeDescriptor{
		Name:   name,
		Access: jvm.AccessFlags(access),
		Source: source,
	}

	superIndex, err := br.readU2()
	if err != nil {
		return nil, fmt.Errorf("failed to read super_class: %w", err)
	}
	if superIndex != 0 {
		if td.Super, err = cp.classRef(superIndex); err != nil {
			return nil, fmt.Errorf("super_class: %w", err)
		}
	}

	interfaceCount, err := br.readU2()
	if err != nil {
		return nil, fmt.Errorf("failed to read interfaces_count: %w", err)
	}
	for i := 0; i < int(interfaceCount); i++ {
		index, err := br.readU2()
		if err != nil {
			return nil, fmt.Errorf("failed to read interface %d: %w", i, err)
		}
		iface, err := cp.classRef(index)
		if err != nil {
			return nil, fmt.Errorf("interface %d: %w", i, err)
		}
		td.Interfaces = append(td.Interfaces, iface)
	}

	if err := skipMembers(br); err != nil {
		return nil, fmt.Errorf("fields: %w", err)
	}

	methodCount, err := br.readU2()
	if err != nil {
		return nil, fmt.Errorf("failed to read methods_count: %w", err)
	}
	for i := 0; i < int(methodCount); i++ {
		method, err := readMethod(br, cp)
		if err != nil {
			return nil, fmt.Errorf("method %d: %w", i, err)
		}
		td.AddMethod(method)
	}

	// Class attributes (SourceFile, InnerClasses, ...) are not needed.
	return td, nil
}

func readConstantPool(br *binaryReader) (constantPool, error) {
	count, err := br.readU2()
	if err != nil {
		return nil, fmt.Errorf("failed to read constant_pool_count: %w", err)
	}
	cp := make(constantPool, count)
	for i := 1; i < int(count); i++ {
		tag, err := br.readU1()
		if err != nil {
			return nil, fmt.Errorf("constant %d: %w", i, err)
		}
		entry := constant{tag: tag}
		switch tag {
		case tagUtf8:
			length, err := br.readU2()
			if err != nil {
				return nil, fmt.Errorf("constant %d: %w", i, err)
			}
			data, err := br.readNBytes(int(length))
			if err != nil {
				return nil, fmt.Errorf("constant %d: %w", i, err)
			}
			entry.utf8 = decodeModifiedUTF8(data)
		case tagClass:
			if entry.index, err = br.readU2(); err != nil {
				return nil, fmt.Errorf("constant %d: %w", i, err)
			}
		case tagString, tagMethodType, tagModule, tagPackage:
			err = br.skip(2)
		case tagMethodHandle:
			err = br.skip(3)
		case tagInteger, tagFloat, tagFieldref, tagMethodref, tagInterfaceMethodref,
			tagNameAndType, tagDynamic, tagInvokeDynamic:
			err = br.skip(4)
		case tagLong, tagDouble:
			err = br.skip(8)
		default:
			return nil, fmt.Errorf("constant %d: unknown tag %d", i, tag)
		}
		if err != nil {
			return nil, fmt.Errorf("constant %d: %w", i, err)
		}
		cp[i] = entry
		// 8-byte constants take two slots
		if tag == tagLong || tag == tagDouble {
			i++
		}
	}
	return cp, nil
}

func readMethod(br *binaryReader, cp constantPool) (*jvm.MethodDescriptor, error) {
	access, err := br.readU2()
	if err != nil {
		return nil, err
	}
	nameIndex, err := br.readU2()
	if err != nil {
		return nil, err
	}
	descIndex, err := br.readU2()
	if err != nil {
		return nil, err
	}
	if err := skipAttributes(br); err != nil {
		return nil, err
	}

	name, err := cp.utf8(nameIndex)
	if err != nil {
		return nil, fmt.Errorf("name: %w", err)
	}
	desc, err := cp.utf8(descIndex)
	if err != nil {
		return nil, fmt.Errorf("descriptor: %w", err)
	}
	params, ret, err := jvm.ParseMethodDescriptor(desc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &jvm.MethodDescriptor{
		Name:       name,
		Access:     jvm.AccessFlags(access),
		Params:     params,
		ReturnType: ret,
	}, nil
}

func skipMembers(br *binaryReader) error {
	count, err := br.readU2()
	if err != nil {
		return err
	}
	for i := 0; i < int(count); i++ {
		// access_flags, name_index, descriptor_index
		if err := br.skip(6); err != nil {
			return err
		}
		if err := skipAttributes(br); err != nil {
			return err
		}
	}
	return nil
}

func skipAttributes(br *binaryReader) error {
	count, err := br.readU2()
	if err != nil {
		return err
	}
	for i := 0; i < int(count); i++ {
		if err := br.skip(2); err != nil {
			return err
		}
		length, err := br.readU4()
		if err != nil {
			return err
		}
		if err := br.skip(int64(length)); err != nil {
			return err
		}
	}
	return nil
}

// decodeModifiedUTF8 converts the class file string encoding to UTF-8: NUL
// is stored as two bytes and supplementary characters as surrogate pairs of
// three bytes each.
func decodeModifiedUTF8(data []byte) string {
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] == 0xC0 && i+1 < len(data) && data[i+1] == 0x80 {
			out = append(out, 0)
			i++
			continue
		}
		if isSurrogatePair(data[i:]) {
			r := utf16.DecodeRune(surrogate(data[i:i+3]), surrogate(data[i+3:i+6]))
			out = utf8.AppendRune(out, r)
			i += 5
			continue
		}
		out = append(out, data[i])
	}
	return string(out)
}

// isSurrogatePair matches a high surrogate (ED A0-AF xx) followed by a low
// surrogate (ED B0-BF xx).
func isSurrogatePair(b []byte) bool {
	return len(b) >= 6 &&
		b[0] == 0xED && b[1]&0xF0 == 0xA0 &&
		b[3] == 0xED && b[4]&0xF0 == 0xB0
}

func surrogate(b []byte) rune {
	return rune(b[0]&0x0F)<<12 | rune(b[1]&0x3F)<<6 | rune(b[2]&0x3F)
}
