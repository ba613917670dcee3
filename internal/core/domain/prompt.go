package domain

import (
	"fmt"
	"strings"
)

const instructionTemplate = `Follow this multi-step process to transform the input image into an ultra-realistic photograph.

**Phase 1: Foundational Correction & De-artifacting**
1.  Analyze the input image to identify it as AI-generated.
2.  Perform a thorough de-artifacting pass. Eliminate all digital artifacts, including banding, noise, pixelation, and unnatural smoothness. The goal is to create a clean, raw photographic base.

**Phase 2: Hyper-Realistic Human Enhancement (Conditional)**
*IMPORTANT: If human subjects are present, execute the following steps with extreme precision:*
1.  **Skin Texture:** Reconstruct skin to be hyper-realistic at a detail level of %d/100. Introduce lifelike imperfections: pores, subtle wrinkles, and natural tonal variations. Avoid overly smooth, 'plastic' skin.
2.  **Facial Features:** Enhance eyes for clarity, adding realistic reflections (catchlights) and depth. Ensure hair has individual strand detail.
3.  **Anatomy & Expression:** Verify and correct anatomical proportions for realism. Ensure facial expressions are natural and convey subtle emotion, not uncanny.

**Phase 3: Photographic & Cinematic Emulation**
1.  **Camera Simulation:** Simulate a high-end DSLR camera with a prime 85mm f/1.4 lens to create a natural, shallow depth of field and tack-sharp focus on the subject.
2.  **Lighting:** Apply complex, cinematic lighting with soft key lights, subtle fill lights, and rim lighting to add depth. The overall realism should be %d/100.
3.  **Color Grading:** Perform professional color grading for true-to-life skin tones and a balanced, natural color palette. Apply HDR for a high dynamic range.

**Phase 4: AI Pixel Enhancement & Upscaling**
1.  Execute an advanced AI pixel enhancement and upscaling process to increase the image resolution to the target quality of '%s'.
2.  This process must generate new, plausible detail, not just enlarge existing pixels. The final output must have extreme clarity and detail suitable for 8K displays or large prints.
`

const compositionTemplate = `
**Phase 5: Composition**
Adjust the final aspect ratio to %s. If cropping is required, use a rule-of-thirds composition to keep the primary subject in focus.
`

// BuildInstruction renders the transformation instruction for the given settings. The
// composition phase is only added when a target aspect ratio other than the original is set.
func BuildInstruction(settings TransformSettings) string {
	var b strings.Builder

	fmt.Fprintf(&b, instructionTemplate, settings.Detail, settings.Realism, settings.Quality)

	if settings.AspectRatio != AspectOriginal {
		fmt.Fprintf(&b, compositionTemplate, settings.AspectRatio)
	}

	return b.String()
}
