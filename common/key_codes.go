package common

// Key codes the engine binds. They match GLFW key codes, which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyC     = 67  // C key (ASCII): cycle camera override
	KeyG     = 71  // G key (ASCII): cycle guides override
	KeyL     = 76  // L key (ASCII): cycle level of detail override
	KeyW     = 87  // W key (ASCII): cycle wireframe override
	KeySpace = 32  // Spacebar (ASCII): pause
	KeyEsc   = 256 // Escape key (GLFW): quit

	Key0 = 48 // 0 key (ASCII)
	Key1 = 49 // 1 key (ASCII): first preset
	Key2 = 50 // 2 key (ASCII)
	Key3 = 51 // 3 key (ASCII)
	Key4 = 52 // 4 key (ASCII)
	Key5 = 53 // 5 key (ASCII)
	Key6 = 54 // 6 key (ASCII)
	Key7 = 55 // 7 key (ASCII)
	Key8 = 56 // 8 key (ASCII): last preset
	Key9 = 57 // 9 key (ASCII)
)
