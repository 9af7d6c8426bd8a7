package render

import "image/color"

// Display configuration shared by the framebuffer and terminal renderers.
var (
    // Caption text and panel background around the pattern.
    Foreground = color.RGBA{R: 0x20, G: 0x20, B: 0x20, A: 0xFF} // #202020
    Background = color.RGBA{R: 0xF4, G: 0xF1, B: 0xEA, A: 0xFF} // #f4f1ea

    // Logical display canvas; scaled to the framebuffer.
    CanvasWidth  = 1920
    CanvasHeight = 1080

    // Caption sizes in points: settings, status and the key legend.
    HeadingTextSize = 44
    DefaultTextSize = 36
    SmallTextSize   = 26
)
