package main

import (
	"context"
	"math"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/retroenv/retrogolib/log"

	"meszarosd.hu/gochip8/internal/config"
	"meszarosd.hu/gochip8/internal/cpu"
)

const (
	screenW    = cpu.ScreenWidth
	screenH    = cpu.ScreenHeight
	sampleRate = 48000
	frequency  = 440
	tps        = 60
)

// windowKeys maps keypad values to keyboard keys, laid out as
//
//	1 2 3 C      1 2 3 4
//	4 5 6 D  ->  Q W E R
//	7 8 9 E      A S D F
//	A 0 B F      Z X C V
var windowKeys = [cpu.KeyCount]ebiten.Key{
	ebiten.KeyX, ebiten.Key1, ebiten.Key2, ebiten.Key3,
	ebiten.KeyQ, ebiten.KeyW, ebiten.KeyE, ebiten.KeyA,
	ebiten.KeyS, ebiten.KeyD, ebiten.KeyZ, ebiten.KeyC,
	ebiten.Key4, ebiten.KeyR, ebiten.KeyF, ebiten.KeyV,
}

// Display converts bitmaps into an RGBA frame buffer for the window.
type Display struct {
	frameBuffer []byte
}

func NewDisplay() *Display {
	return &Display{
		frameBuffer: make([]byte, screenW*screenH*4),
	}
}

func (d *Display) Draw(bitmap cpu.Bitmap) {
	for y := range screenH {
		for x := range screenW {
			idx := (y*screenW + x) * 4
			var value byte
			if bitmap.Pixel(x, y) {
				value = 255
			}
			d.frameBuffer[idx+0] = value
			d.frameBuffer[idx+1] = value
			d.frameBuffer[idx+2] = value
			d.frameBuffer[idx+3] = 255
		}
	}
}

type stream struct {
	pos int64
}

func (s *stream) Read(buf []byte) (int, error) {
	const bytesPerSample = 8

	n := (len(buf) / bytesPerSample * bytesPerSample)

	const length = sampleRate / frequency
	for i := 0; i < n/bytesPerSample; i++ {
		v := math.Float32bits(float32(math.Sin(2 * math.Pi * float64(s.pos/bytesPerSample+int64(i)) / length)))
		buf[8*i] = byte(v)
		buf[8*i+1] = byte(v >> 8)
		buf[8*i+2] = byte(v >> 16)
		buf[8*i+3] = byte(v >> 24)
		buf[8*i+4] = byte(v)
		buf[8*i+5] = byte(v >> 8)
		buf[8*i+6] = byte(v >> 16)
		buf[8*i+7] = byte(v >> 24)
	}

	s.pos += int64(n)
	s.pos %= length * bytesPerSample

	return n, nil
}

func (s *stream) Close() error {
	return nil
}

// Window runs the machine inside an ebiten game loop. All steps happen on
// the game's update goroutine.
type Window struct {
	ctx     context.Context
	logger  *log.Logger
	display *Display
	keypad  *cpu.Keypad
	machine *cpu.Cpu
	img     *ebiten.Image
	scale   int

	stepsPerTick float64
	pending      float64
	paused       bool

	audioContext *audio.Context
	audioPlayer  *audio.Player
}

func NewWindow(logger *log.Logger, opts config.Options, keypad *cpu.Keypad) *Window {
	return &Window{
		logger:       logger,
		display:      NewDisplay(),
		keypad:       keypad,
		scale:        opts.Scale,
		stepsPerTick: float64(opts.Hz) / tps,
		paused:       opts.Paused,
	}
}

// Screen returns the display the machine draws to.
func (w *Window) Screen() cpu.Display {
	return w.display
}

func (w *Window) Run(ctx context.Context, machine *cpu.Cpu) error {
	w.ctx = ctx
	w.machine = machine

	ebiten.SetWindowSize(screenW*w.scale, screenH*w.scale)
	ebiten.SetWindowTitle("CHIP-8")
	ebiten.SetTPS(tps)
	return ebiten.RunGame(w)
}

func (w *Window) Update() error {
	if w.ctx.Err() != nil || ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	for i, key := range windowKeys {
		w.keypad.Set(uint8(i), ebiten.IsKeyPressed(key))
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		w.paused = !w.paused
		w.pending = 0
		w.logger.Info("Pause toggled", log.String("paused", strconv.FormatBool(w.paused)))
	}

	steps := 0
	if w.paused {
		if inpututil.IsKeyJustPressed(ebiten.KeyN) {
			steps = 1
		}
	} else {
		w.pending += w.stepsPerTick
		steps = int(w.pending)
		w.pending -= float64(steps)
	}

	for range steps {
		if err := w.machine.Step(); err != nil {
			return err
		}
	}

	return w.updateSound()
}

func (w *Window) updateSound() error {
	if w.audioContext == nil {
		w.audioContext = audio.NewContext(sampleRate)
	}
	if w.audioPlayer == nil {
		var err error
		w.audioPlayer, err = w.audioContext.NewPlayerF32(&stream{})
		if err != nil {
			return err
		}
	}

	if w.machine.SoundTimer() > 0 {
		if !w.audioPlayer.IsPlaying() {
			w.audioPlayer.Play()
		}
	} else {
		w.audioPlayer.Pause()
	}
	return nil
}

func (w *Window) Draw(screen *ebiten.Image) {
	if w.img == nil {
		w.img = ebiten.NewImage(screenW, screenH)
	}
	w.img.WritePixels(w.display.frameBuffer)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(w.scale), float64(w.scale))
	screen.DrawImage(w.img, op)
}

func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenW * w.scale, screenH * w.scale
}
