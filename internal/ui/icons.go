package ui

import "fyne.io/fyne/v2"

var splitVerticalIcon = fyne.NewStaticResource("split-vertical.svg", []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24">
<path fill="#000000" d="M3 3h18v18H3V3zm2 2v14h6V5H5zm8 0v14h6V5h-6z"/>
</svg>`))

var splitHorizontalIcon = fyne.NewStaticResource("split-horizontal.svg", []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24">
<path fill="#000000" d="M3 3h18v18H3V3zm2 2v6h14V5H5zm0 8v6h14v-6H5z"/>
</svg>`))
