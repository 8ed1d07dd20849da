// Package classfiletest builds minimal, valid class files for tests.
package classfiletest

import (
	"bytes"
	"encoding/binary"

	"github.com/scan-io-git/apiprops/internal/jvm"
)

// Class describes a class file to encode. Names are slash-separated binary
// names (org/gradle/api/Project).
type Class struct {
	Name       string
	Access     jvm.AccessFlags
	Super      string
	Interfaces []string
	Fields     []Member
	Methods    []Member
}

// Member is a field or method.
type Member struct {
	Name       string
	Descriptor string
	Access     jvm.AccessFlags
}

// Public is a shorthand for a public method.
func Public(name, descriptor string) Member {
	return Member{Name: name, Descriptor: descriptor, Access: jvm.AccPublic}
}

type pool struct {
	buf   bytes.Buffer
	count uint16
	utf8s map[string]uint16
}

func newPool() *pool {
	return &pool{count: 1, utf8s: map[string]uint16{}}
}

func (p *pool) utf8(s string) uint16 {
	if idx, ok := p.utf8s[s]; ok {
		return idx
	}
	p.buf.WriteByte(1)
	writeU2(&p.buf, uint16(len(s)))
	p.buf.WriteString(s)
	idx := p.count
	p.count++
	p.utf8s[s] = idx
	return idx
}

func (p *pool) class(name string) uint16 {
	nameIdx := p.utf8(name)
	p.buf.WriteByte(7)
	writeU2(&p.buf, nameIdx)
	idx := p.count
	p.count++
	return idx
}

func (p *pool) long(v uint64) {
	p.buf.WriteByte(5)
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	p.buf.Write(b[:])
	p.count += 2
}

// Bytes encodes c as a Java 8 class file. Every method carries a dummy Code
// attribute and the class a SourceFile attribute so readers must skip them.
func (c Class) Bytes() []byte {
	cp := newPool()
	cp.long(42)
	this := cp.class(c.Name)
	var super uint16
	if c.Super != "" {
		super = cp.class(c.Super)
	}
	var ifaces []uint16
	for _, i := range c.Interfaces {
		ifaces = append(ifaces, cp.class(i))
	}
	codeAttr := cp.utf8("Code")
	sourceAttr := cp.utf8("SourceFile")
	sourceName := cp.utf8("Generated.java")

	var body bytes.Buffer
	writeU2(&body, uint16(c.Access))
	writeU2(&body, this)
	writeU2(&body, super)
	writeU2(&body, uint16(len(ifaces)))
	for _, i := range ifaces {
		writeU2(&body, i)
	}

	writeU2(&body, uint16(len(c.Fields)))
	for _, f := range c.Fields {
		writeU2(&body, uint16(f.Access))
		writeU2(&body, cp.utf8(f.Name))
		writeU2(&body, cp.utf8(f.Descriptor))
		writeU2(&body, 0)
	}

	writeU2(&body, uint16(len(c.Methods)))
	for _, m := range c.Methods {
		writeU2(&body, uint16(m.Access))
		writeU2(&body, cp.utf8(m.Name))
		writeU2(&body, cp.utf8(m.Descriptor))
		writeU2(&body, 1)
		writeU2(&body, codeAttr)
		writeU4(&body, 3)
		body.Write([]byte{0x00, 0x01, 0xB1})
	}

	writeU2(&body, 1)
	writeU2(&body, sourceAttr)
	writeU4(&body, 2)
	writeU2(&body, sourceName)

	var out bytes.Buffer
	writeU4(&out, 0xCAFEBABE)
	writeU2(&out, 0)
	writeU2(&out, 52)
	writeU2(&out, cp.count)
	out.Write(cp.buf.Bytes())
	out.Write(body.Bytes())
	return out.Bytes()
}

func writeU2(b *bytes.Buffer, v uint16) {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], v)
	b.Write(buf[:])
}

func writeU4(b *bytes.Buffer, v uint32) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], v)
	b.Write(buf[:])
}
