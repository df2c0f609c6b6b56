package tsequenceset

import (
	"bytes"
	"context"
	"encoding/binary"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/gogo/protobuf/proto"
	"github.com/golang/snappy"
	perrors "github.com/pkg/errors"

	"github.com/grailbio/temporal/basetype"
	"github.com/grailbio/temporal/biopb"
	"github.com/grailbio/temporal/internal/arena"
	"github.com/grailbio/temporal/period"
	"github.com/grailbio/temporal/terrors"
	"github.com/grailbio/temporal/tinstant"
	"github.com/grailbio/temporal/tsequence"
)

// Encode implements spec.md section 4.1/section 6's packed binary layout:
// a fixed 16-byte header (tag, interpolation, sequence count) followed by
// the sequences themselves, each double-aligned. The encoding has no
// offsets table and no bounding box; Decode locates each sequence by
// reading the ones before it. Per-value bytes reuse the base-type
// adapter's text form (Out/In) rather than a bespoke binary codec per
// domain, since the adapter interface already guarantees a lossless round
// trip for all five base types including Point; only the structural
// skeleton (header, instant counts, timestamps) is true fixed-width binary.
func (ss *SequenceSet) Encode() ([]byte, error) {
	adapter, err := basetype.For(ss.Tag)
	if err != nil {
		return nil, err
	}

	type encodedSeq struct {
		header [24]byte // lower, upper timestamps + flags + instant count
		body   []byte
	}
	seqs := make([]encodedSeq, len(ss.sequences))
	total := 0
	for i, s := range ss.sequences {
		var body []byte
		for _, inst := range s.Instants {
			var tbuf [8]byte
			binary.LittleEndian.PutUint64(tbuf[:], uint64(inst.Time))
			body = append(body, tbuf[:]...)
			text := adapter.Out(inst.Value)
			var lbuf [4]byte
			binary.LittleEndian.PutUint32(lbuf[:], uint32(len(text)))
			body = append(body, lbuf[:]...)
			body = append(body, text...)
		}
		enc := encodedSeq{body: body}
		p := s.Period()
		binary.LittleEndian.PutUint64(enc.header[0:8], uint64(p.Lower))
		binary.LittleEndian.PutUint64(enc.header[8:16], uint64(p.Upper))
		flags := byte(0)
		if p.LowerInc {
			flags |= 1
		}
		if p.UpperInc {
			flags |= 2
		}
		enc.header[16] = flags
		binary.LittleEndian.PutUint32(enc.header[20:24], uint32(s.NumInstants()))
		seqs[i] = enc
		total += len(enc.header) + alignUp(len(enc.body))
	}

	headerSize := 16 // tag(4) + interp(4) + numSequences(4) + reserved(4)
	buf := make([]byte, headerSize+total)
	a := arena.New(buf)

	hdr := a.Alloc(headerSize)
	binary.LittleEndian.PutUint32(hdr[0:4], uint32(ss.Tag))
	binary.LittleEndian.PutUint32(hdr[4:8], uint32(ss.Interp))
	binary.LittleEndian.PutUint32(hdr[8:12], uint32(len(ss.sequences)))

	for _, enc := range seqs {
		dst := a.Alloc(len(enc.header))
		copy(dst, enc.header[:])
		if len(enc.body) > 0 {
			bodyDst := a.Alloc(len(enc.body))
			copy(bodyDst, enc.body)
		}
		a.Align()
	}
	return a.Bytes(), nil
}

func alignUp(n int) int {
	if n%8 != 0 {
		n += 8 - n%8
	}
	return n
}

// Decode reverses Encode.
func Decode(tag basetype.Tag, interp tsequence.Interpolation, buf []byte) (*SequenceSet, error) {
	adapter, err := basetype.For(tag)
	if err != nil {
		return nil, err
	}
	if len(buf) < 16 {
		return nil, terrors.New(terrors.ParseError, "packed buffer too short for header", len(buf))
	}
	gotTag := basetype.Tag(binary.LittleEndian.Uint32(buf[0:4]))
	gotInterp := tsequence.Interpolation(binary.LittleEndian.Uint32(buf[4:8]))
	if gotTag != tag {
		return nil, terrors.New(terrors.TypeMismatch, "packed buffer tag does not match requested tag", gotTag, tag)
	}
	if gotInterp != interp {
		return nil, terrors.New(terrors.InterpolationMismatch, "packed buffer interpolation does not match requested interpolation", gotInterp, interp)
	}
	numSeqs := int(binary.LittleEndian.Uint32(buf[8:12]))
	off := 16

	seqs := make([]tsequence.Sequence, 0, numSeqs)
	for i := 0; i < numSeqs; i++ {
		if off+24 > len(buf) {
			return nil, terrors.New(terrors.ParseError, "packed buffer truncated at sequence header", i)
		}
		lower := period.Timestamp(binary.LittleEndian.Uint64(buf[off : off+8]))
		upper := period.Timestamp(binary.LittleEndian.Uint64(buf[off+8 : off+16]))
		flags := buf[off+16]
		numInstants := int(binary.LittleEndian.Uint32(buf[off+20 : off+24]))
		off += 24

		instants := make([]tinstant.Instant, 0, numInstants)
		for j := 0; j < numInstants; j++ {
			if off+12 > len(buf) {
				return nil, terrors.New(terrors.ParseError, "packed buffer truncated at instant", i, j)
			}
			t := period.Timestamp(binary.LittleEndian.Uint64(buf[off : off+8]))
			strLen := int(binary.LittleEndian.Uint32(buf[off+8 : off+12]))
			off += 12
			if off+strLen > len(buf) {
				return nil, terrors.New(terrors.ParseError, "packed buffer truncated at instant value", i, j)
			}
			value, verr := adapter.In(string(buf[off : off+strLen]))
			if verr != nil {
				return nil, verr
			}
			off += strLen
			inst, ierr := tinstant.New(t, value, tag)
			if ierr != nil {
				return nil, ierr
			}
			instants = append(instants, inst)
		}
		// Advance past the body's 8-byte alignment padding the same way
		// Encode's Arena.Align() inserted it.
		bodyLen := numInstants*12 + sumInstantTextLen(adapter, instants)
		padded := alignUp(bodyLen)
		off += padded - bodyLen

		seq, serr := tsequence.New(tag, interp, instants, flags&1 != 0, flags&2 != 0, false)
		if serr != nil {
			return nil, serr
		}
		seqs = append(seqs, seq)
	}
	return New(tag, interp, seqs, BuildOpts{Normalize: false})
}

func sumInstantTextLen(adapter basetype.Adapter, instants []tinstant.Instant) int {
	n := 0
	for _, inst := range instants {
		n += len(adapter.Out(inst.Value))
	}
	return n
}

// Marshal wraps Encode's packed bytes in a biopb.SequenceSetEnvelope and
// serializes it with gogo/protobuf, optionally snappy-compressing the
// payload when doing so shrinks it (spec.md section 6's binary envelope,
// per SPEC_FULL.md's "packed buffer compression for cold storage export"
// wiring).
func (ss *SequenceSet) Marshal() ([]byte, error) {
	packed, err := ss.Encode()
	if err != nil {
		return nil, perrors.Wrap(err, "tsequenceset: encode")
	}
	payload := packed
	compressed := false
	if snappied := snappy.Encode(nil, packed); len(snappied) < len(packed) {
		payload = snappied
		compressed = true
	}
	env := &biopb.SequenceSetEnvelope{
		Tag:        int32(ss.Tag),
		Interp:     int32(ss.Interp),
		LowerBound: int64(mustPeriodLower(ss)),
		UpperBound: int64(mustPeriodUpper(ss)),
		Payload:    payload,
		Compressed: compressed,
	}
	out, err := proto.Marshal(env)
	if err != nil {
		return nil, perrors.Wrap(err, "tsequenceset: protobuf marshal")
	}
	return out, nil
}

func mustPeriodLower(ss *SequenceSet) period.Timestamp {
	if len(ss.sequences) == 0 {
		return 0
	}
	return ss.sequences[0].Period().Lower
}

func mustPeriodUpper(ss *SequenceSet) period.Timestamp {
	if len(ss.sequences) == 0 {
		return 0
	}
	return ss.sequences[len(ss.sequences)-1].Period().Upper
}

// Unmarshal reverses Marshal.
func Unmarshal(tag basetype.Tag, interp tsequence.Interpolation, data []byte) (*SequenceSet, error) {
	var env biopb.SequenceSetEnvelope
	if err := proto.Unmarshal(data, &env); err != nil {
		return nil, perrors.Wrap(err, "tsequenceset: protobuf unmarshal")
	}
	if basetype.Tag(env.Tag) != tag {
		return nil, terrors.New(terrors.TypeMismatch, "envelope tag does not match requested tag", env.Tag, tag)
	}
	payload := env.Payload
	if env.Compressed {
		decoded, err := snappy.Decode(nil, payload)
		if err != nil {
			return nil, perrors.Wrap(err, "tsequenceset: snappy decode")
		}
		payload = decoded
	}
	return Decode(tag, interp, payload)
}

// LoadFromS3 fetches and Unmarshals a sequence set previously written by
// ExportToS3, per SPEC_FULL.md's "AWS S3-backed bulk load/export" wiring
// (spec.md section 5's "bulk builders accept arrays by move" is the
// in-process analogue; this is the out-of-process transport for the same
// opaque blob).
func LoadFromS3(ctx context.Context, sess *session.Session, tag basetype.Tag, interp tsequence.Interpolation, bucket, key string) (*SequenceSet, error) {
	downloader := s3manager.NewDownloader(sess)
	buf := aws.NewWriteAtBuffer(nil)
	if _, err := downloader.DownloadWithContext(ctx, buf, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}); err != nil {
		return nil, perrors.Wrapf(err, "tsequenceset: download s3://%s/%s", bucket, key)
	}
	return Unmarshal(tag, interp, buf.Bytes())
}

// ExportToS3 is the upload-side counterpart of LoadFromS3.
func ExportToS3(ctx context.Context, sess *session.Session, bucket, key string, ss *SequenceSet) error {
	data, err := ss.Marshal()
	if err != nil {
		return err
	}
	uploader := s3manager.NewUploader(sess)
	_, err = uploader.UploadWithContext(ctx, &s3manager.UploadInput{
		Bucket: &bucket,
		Key:    &key,
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return perrors.Wrapf(err, "tsequenceset: upload s3://%s/%s", bucket, key)
	}
	return nil
}
