package codec

import (
	"fmt"

	"github.com/bluenviron/mediacommon/pkg/codecs/h264"

	"m7s.live/camera/v5/pkg/util"
)

const (
	h264ProfileBaseline = 66
	h264Level40         = 40
	h264SliceTypeIAll   = 7
	h264MbTypeIPCM      = 25
)

// H264PCMEncoder produces intra-only baseline H.264 where every macroblock is
// coded as I_PCM. Frames are large but exact and need no transform stage.
type H264PCMEncoder struct {
	width, height int
	sps, pps      []byte
	idrPicID      uint
	y, u, v       []byte
}

func NewH264PCMEncoder(width, height int) (*H264PCMEncoder, error) {
	if width <= 0 || height <= 0 || width%16 != 0 || height%16 != 0 {
		return nil, fmt.Errorf("frame size %dx%d is not a positive multiple of 16", width, height)
	}
	e := &H264PCMEncoder{
		width:  width,
		height: height,
		y:      make([]byte, width*height),
		u:      make([]byte, width*height/4),
		v:      make([]byte, width*height/4),
	}
	e.sps = e.buildSPS()
	e.pps = buildPPS()
	return e, nil
}

func (e *H264PCMEncoder) SPS() []byte {
	return e.sps
}

func (e *H264PCMEncoder) PPS() []byte {
	return e.pps
}

func (e *H264PCMEncoder) buildSPS() []byte {
	var w util.GolombBitWriter
	w.WriteBits(h264ProfileBaseline, 8)
	w.WriteBits(0, 8) // constraint_set flags
	w.WriteBits(h264Level40, 8)
	w.WriteExponentialGolombCode(0) // seq_parameter_set_id
	w.WriteExponentialGolombCode(0) // log2_max_frame_num_minus4
	w.WriteExponentialGolombCode(2) // pic_order_cnt_type
	w.WriteExponentialGolombCode(0) // max_num_ref_frames
	w.WriteBit(0)                   // gaps_in_frame_num_value_allowed_flag
	w.WriteExponentialGolombCode(uint(e.width/16 - 1))
	w.WriteExponentialGolombCode(uint(e.height/16 - 1))
	w.WriteBit(1) // frame_mbs_only_flag
	w.WriteBit(1) // direct_8x8_inference_flag
	w.WriteBit(0) // frame_cropping_flag
	w.WriteBit(0) // vui_parameters_present_flag
	w.WriteTrailingBits()
	return buildNALU(NALU_SPS, 3, w.Bytes())
}

func buildPPS() []byte {
	var w util.GolombBitWriter
	w.WriteExponentialGolombCode(0) // pic_parameter_set_id
	w.WriteExponentialGolombCode(0) // seq_parameter_set_id
	w.WriteBit(0)                   // entropy_coding_mode_flag
	w.WriteBit(0)                   // bottom_field_pic_order_in_frame_present_flag
	w.WriteExponentialGolombCode(0) // num_slice_groups_minus1
	w.WriteExponentialGolombCode(0) // num_ref_idx_l0_default_active_minus1
	w.WriteExponentialGolombCode(0) // num_ref_idx_l1_default_active_minus1
	w.WriteBit(0)                   // weighted_pred_flag
	w.WriteBits(0, 2)               // weighted_bipred_idc
	w.WriteSE(0)                    // pic_init_qp_minus26
	w.WriteSE(0)                    // pic_init_qs_minus26
	w.WriteSE(0)                    // chroma_qp_index_offset
	w.WriteBit(0)                   // deblocking_filter_control_present_flag
	w.WriteBit(0)                   // constrained_intra_pred_flag
	w.WriteBit(0)                   // redundant_pic_cnt_present_flag
	w.WriteTrailingBits()
	return buildNALU(NALU_PPS, 3, w.Bytes())
}

// buildNALU prepends the NAL header and inserts emulation prevention bytes.
func buildNALU(t H264NALUType, refIdc byte, rbsp []byte) []byte {
	out := make([]byte, 1, len(rbsp)+len(rbsp)/64+2)
	out[0] = refIdc<<5 | byte(t)
	zeros := 0
	for _, b := range rbsp {
		if zeros >= 2 && b <= 3 {
			out = append(out, 3)
			zeros = 0
		}
		out = append(out, b)
		if b == 0 {
			zeros++
		} else {
			zeros = 0
		}
	}
	return out
}

// EncodeRGB32 encodes one BGRA frame (4 bytes per pixel, blue first) as an
// Annex-B IDR access unit carrying SPS and PPS.
func (e *H264PCMEncoder) EncodeRGB32(frame []byte) ([]byte, error) {
	if len(frame) < e.width*e.height*4 {
		return nil, fmt.Errorf("frame has %d bytes, want %d", len(frame), e.width*e.height*4)
	}
	e.convert(frame)
	slice := buildNALU(NALU_IDR_Picture, 3, e.encodeSlice())
	e.idrPicID ^= 1
	return h264.AnnexBMarshal([][]byte{e.sps, e.pps, slice})
}

// convert fills the 4:2:0 planes with BT.601 limited range samples.
func (e *H264PCMEncoder) convert(frame []byte) {
	cw := e.width / 2
	for row := 0; row < e.height; row++ {
		for col := 0; col < e.width; col++ {
			p := frame[(row*e.width+col)*4:]
			b, g, r := int(p[0]), int(p[1]), int(p[2])
			e.y[row*e.width+col] = byte(16 + (66*r+129*g+25*b+128)>>8)
			if row%2 == 0 && col%2 == 0 {
				i := row/2*cw + col/2
				e.u[i] = byte(128 + (-38*r-74*g+112*b+128)>>8)
				e.v[i] = byte(128 + (112*r-94*g-18*b+128)>>8)
			}
		}
	}
}

func (e *H264PCMEncoder) encodeSlice() []byte {
	var w util.GolombBitWriter
	w.WriteExponentialGolombCode(0) // first_mb_in_slice
	w.WriteExponentialGolombCode(h264SliceTypeIAll)
	w.WriteExponentialGolombCode(0) // pic_parameter_set_id
	w.WriteBits(0, 4)               // frame_num
	w.WriteExponentialGolombCode(e.idrPicID)
	w.WriteBit(0) // no_output_of_prior_pics_flag
	w.WriteBit(0) // long_term_reference_flag
	w.WriteSE(0)  // slice_qp_delta
	cw := e.width / 2
	for mby := 0; mby < e.height/16; mby++ {
		for mbx := 0; mbx < e.width/16; mbx++ {
			w.WriteExponentialGolombCode(h264MbTypeIPCM)
			for !w.Aligned() {
				w.WriteBit(0) // pcm_alignment_zero_bit
			}
			for row := 0; row < 16; row++ {
				off := (mby*16+row)*e.width + mbx*16
				w.WriteBytes(e.y[off : off+16])
			}
			for _, plane := range [][]byte{e.u, e.v} {
				for row := 0; row < 8; row++ {
					off := (mby*8+row)*cw + mbx*8
					w.WriteBytes(plane[off : off+8])
				}
			}
		}
	}
	w.WriteTrailingBits()
	return w.Bytes()
}
